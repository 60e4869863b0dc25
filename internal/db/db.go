// Package db is the record-store gateway. Two tables back the call flow:
//
//	users            phone_number (unique) -> vehicle_number (nullable)
//	service_records  vehicle_number (unique) -> next_service_date (nullable),
//	                 selected_services text[] with set semantics
//
// All writes are idempotent upserts keyed on vehicle_number; a record that
// does not exist yet is created on first write.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

func New(databaseURL string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqlDB}, nil
}
