package models

import (
	"time"

	"github.com/google/uuid"
)

// Models

// UserRecord maps a callee's phone number to their vehicle.
// VehicleNumber is nil when the vehicle has not been registered yet —
// the call flow then asks the caller to state it.
type UserRecord struct {
	ID            uuid.UUID `json:"id"`
	PhoneNumber   string    `json:"phone_number"`
	VehicleNumber *string   `json:"vehicle_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ServiceRecord is the durable per-vehicle service state. NextServiceDate is
// nil when no service has been scheduled. SelectedServices has set semantics:
// upserts collapse duplicates, entries are never removed by the call flow.
type ServiceRecord struct {
	ID               uuid.UUID  `json:"id"`
	VehicleNumber    string     `json:"vehicle_number"`
	NextServiceDate  *time.Time `json:"next_service_date,omitempty"`
	SelectedServices []string   `json:"selected_services,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DTOs for API responses

type HealthResponse struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	TTSStatus string `json:"tts_status"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// CacheInfo describes the synthesized-audio cache contents.
type CacheInfo struct {
	Count     int         `json:"count"`
	TotalSize int64       `json:"total_size"`
	Files     []CacheFile `json:"files"`
}

type CacheFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type ClearCacheResponse struct {
	Cleared int `json:"cleared"`
}
