package domain

import "time"

// AppControl is the remote kill switch: a single JSON document polled by
// clients to globally disable the portal.
type AppControl struct {
	Locked      bool      `json:"locked"`
	Message     string    `json:"message,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
}

type UpdateAppControlInput struct {
	Locked  bool   `json:"locked"`
	Message string `json:"message,omitempty" validate:"omitempty,max=500"`
}
