package session

import (
	"time"

	"github.com/askhatov/lossbot/internal/domain/incident"
)

// Draft accumulates the user's choices over one wizard run. Fields are
// pointers so "unset" is distinguishable from a zero value; the engine
// fills them strictly in step order and discards the whole draft on
// commit or cancel.
type Draft struct {
	ManagerID      *int64
	ManagerName    string
	RestaurantID   *int64
	RestaurantName string

	Day         *time.Time
	StartHour   *int
	StartMinute *int

	// CloseNow is the tri-state close-mode choice: nil until the user picks,
	// then true for "close now" (end time collected) or false for "close
	// later" (incident stays open).
	CloseNow  *bool
	EndHour   *int
	EndMinute *int

	Reason  incident.Reason
	Comment *string
	Amount  *int64

	// Close-flow fields.
	IncidentID *int64
	// IncidentStart is the start timestamp of the picked open incident,
	// kept for the overnight rollover comparison at commit.
	IncidentStart time.Time
}
