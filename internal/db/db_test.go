package db

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// setupMockDB creates a mock-backed DB for testing.
func setupMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	return &DB{sqlDB}, mock
}

func TestGetUserByPhone(t *testing.T) {
	database, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now()
	vehicle := "GJ01AB1234"

	rows := sqlmock.NewRows([]string{"id", "phone_number", "vehicle_number", "created_at", "updated_at"}).
		AddRow(id.String(), "+919876543210", vehicle, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("+919876543210").
		WillReturnRows(rows)

	user, err := database.GetUserByPhone(context.Background(), "+919876543210")
	if err != nil {
		t.Fatalf("GetUserByPhone failed: %v", err)
	}
	if user.VehicleNumber == nil || *user.VehicleNumber != vehicle {
		t.Errorf("expected vehicle %s, got %v", vehicle, user.VehicleNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetUserByPhoneUnknownVehicle(t *testing.T) {
	database, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "phone_number", "vehicle_number", "created_at", "updated_at"}).
		AddRow(uuid.New().String(), "+919876543210", nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("+919876543210").
		WillReturnRows(rows)

	user, err := database.GetUserByPhone(context.Background(), "+919876543210")
	if err != nil {
		t.Fatalf("GetUserByPhone failed: %v", err)
	}
	if user.VehicleNumber != nil {
		t.Errorf("expected nil vehicle number, got %q", *user.VehicleNumber)
	}
}

func TestGetUserByPhoneNotFound(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("+910000000000").
		WillReturnError(sql.ErrNoRows)

	_, err := database.GetUserByPhone(context.Background(), "+910000000000")
	if err == nil || !strings.Contains(err.Error(), "user not found") {
		t.Errorf("expected user not found error, got %v", err)
	}
}

func TestGetServiceRecord(t *testing.T) {
	database, mock := setupMockDB(t)

	due := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "vehicle_number", "next_service_date", "selected_services", "created_at", "updated_at"}).
		AddRow(uuid.New().String(), "GJ01AB1234", due, []byte(`{"Bike wash","Tire rotation"}`), time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM service_records").
		WithArgs("GJ01AB1234").
		WillReturnRows(rows)

	record, err := database.GetServiceRecord(context.Background(), "GJ01AB1234")
	if err != nil {
		t.Fatalf("GetServiceRecord failed: %v", err)
	}
	if record.NextServiceDate == nil || !record.NextServiceDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, record.NextServiceDate)
	}
	if len(record.SelectedServices) != 2 {
		t.Errorf("expected 2 selected services, got %v", record.SelectedServices)
	}
}

func TestGetServiceRecordNotFound(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM service_records").
		WithArgs("UNKNOWN").
		WillReturnError(sql.ErrNoRows)

	_, err := database.GetServiceRecord(context.Background(), "UNKNOWN")
	if err == nil || !strings.Contains(err.Error(), "service record not found") {
		t.Errorf("expected service record not found error, got %v", err)
	}
}

func TestUpsertDueDate(t *testing.T) {
	database, mock := setupMockDB(t)

	date := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO service_records").
		WithArgs(sqlmock.AnyArg(), "GJ01AB1234", date).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := database.UpsertDueDate(context.Background(), "GJ01AB1234", date); err != nil {
		t.Fatalf("UpsertDueDate failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddSelectedServicesNormalizes(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectExec("INSERT INTO service_records").
		WithArgs(sqlmock.AnyArg(), "GJ01AB1234", pq.Array([]string{"Tire rotation", "Bike wash"})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := database.AddSelectedServices(context.Background(), "GJ01AB1234", []string{" Tire rotation ", "", "Bike wash"})
	if err != nil {
		t.Fatalf("AddSelectedServices failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddSelectedServicesEmptyIsNoOp(t *testing.T) {
	database, mock := setupMockDB(t)

	// No expectations registered: the gateway must not touch the database.
	if err := database.AddSelectedServices(context.Background(), "GJ01AB1234", []string{"", "   "}); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}

func TestAddSelectedServicesWriteError(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectExec("INSERT INTO service_records").
		WillReturnError(sql.ErrConnDone)

	err := database.AddSelectedServices(context.Background(), "GJ01AB1234", []string{"Bike wash"})
	if err == nil || !strings.Contains(err.Error(), "failed to add selected services") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}
