package entities

import "time"

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// DataWindow describes the span of movement data currently loaded.
type DataWindow struct {
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	MovementCount int        `json:"movement_count"`
}

type HealthCheckResponse struct {
	Status     string                   `json:"status"`
	Services   map[string]ServiceStatus `json:"services"`
	UpSince    time.Time                `json:"up_since"`
	Uptime     string                   `json:"uptime"`
	DataWindow *DataWindow              `json:"data_window,omitempty"`
}
