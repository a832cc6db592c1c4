package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEntry is one approved absence (leave or training) surfaced on
// the shared calendar grid.
type CalendarEntry struct {
	RequestID   uuid.UUID   `json:"request_id" db:"request_id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	UserName    string      `json:"user_name" db:"user_name"`
	Type        RequestType `json:"type" db:"type"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     time.Time   `json:"end_date" db:"end_date"`
	WorkingDays int         `json:"working_days" db:"working_days"`
}
