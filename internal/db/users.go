package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sarthi-tvs/callagent/internal/models"
)

// GetUserByPhone retrieves the user record for a callee's phone number.
// VehicleNumber is nil when no vehicle has been registered for the number.
func (db *DB) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.UserRecord, error) {
	query := `
		SELECT id, phone_number, vehicle_number, created_at, updated_at
		FROM users
		WHERE phone_number = $1
	`

	user := &models.UserRecord{}
	err := db.QueryRowContext(ctx, query, phoneNumber).Scan(
		&user.ID, &user.PhoneNumber, &user.VehicleNumber,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return user, nil
}
