package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sarthi-tvs/callagent/internal/models"
)

// GetServiceRecord retrieves the service record for a vehicle.
func (db *DB) GetServiceRecord(ctx context.Context, vehicleNumber string) (*models.ServiceRecord, error) {
	query := `
		SELECT id, vehicle_number, next_service_date, selected_services, created_at, updated_at
		FROM service_records
		WHERE vehicle_number = $1
	`

	record := &models.ServiceRecord{}
	err := db.QueryRowContext(ctx, query, vehicleNumber).Scan(
		&record.ID, &record.VehicleNumber, &record.NextServiceDate,
		pq.Array(&record.SelectedServices), &record.CreatedAt, &record.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service record: %w", err)
	}

	return record, nil
}

// UpsertDueDate sets the next service date for a vehicle, creating the
// record on first write. Re-running with the same date is a no-op beyond
// bumping updated_at.
func (db *DB) UpsertDueDate(ctx context.Context, vehicleNumber string, date time.Time) error {
	query := `
		INSERT INTO service_records (id, vehicle_number, next_service_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (vehicle_number) DO UPDATE SET
			next_service_date = EXCLUDED.next_service_date,
			updated_at = NOW()
	`

	_, err := db.ExecContext(ctx, query, uuid.New(), vehicleNumber, date)
	if err != nil {
		return fmt.Errorf("failed to upsert due date: %w", err)
	}

	return nil
}

// AddSelectedServices unions names into the vehicle's selected_services set.
// Names are trimmed and empties dropped; an empty list after normalization is
// a no-op. Duplicates collapse, both within the call and against what is
// already stored.
func (db *DB) AddSelectedServices(ctx context.Context, vehicleNumber string, names []string) error {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		if s := strings.TrimSpace(name); s != "" {
			normalized = append(normalized, s)
		}
	}
	if len(normalized) == 0 {
		return nil
	}

	query := `
		INSERT INTO service_records (id, vehicle_number, selected_services)
		VALUES ($1, $2, $3)
		ON CONFLICT (vehicle_number) DO UPDATE SET
			selected_services = ARRAY(
				SELECT DISTINCT unnest(service_records.selected_services || EXCLUDED.selected_services)
				ORDER BY 1
			),
			updated_at = NOW()
	`

	_, err := db.ExecContext(ctx, query, uuid.New(), vehicleNumber, pq.Array(normalized))
	if err != nil {
		return fmt.Errorf("failed to add selected services: %w", err)
	}

	return nil
}
