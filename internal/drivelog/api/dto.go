package api

import "time"

type StartSessionRequest struct {
	DriverName string     `json:"driver_name"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type CompleteSessionRequest struct {
	EndedAt *time.Time `json:"ended_at,omitempty"`
}

type UpdateSessionRequest struct {
	DriverName *string    `json:"driver_name,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}
