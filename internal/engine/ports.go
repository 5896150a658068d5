package engine

import (
	"context"
	"time"

	"github.com/askhatov/lossbot/internal/domain/incident"
)

// ReferenceDirectory answers the read-only manager and restaurant lookups
// the wizard offers as choices.
type ReferenceDirectory interface {
	// ListManagers returns all managers ordered by name.
	ListManagers(ctx context.Context) ([]incident.Manager, error)

	// ListRestaurants returns the restaurants attached to a manager,
	// ordered by name. Empty when the manager has none.
	ListRestaurants(ctx context.Context, managerID int64) ([]incident.Restaurant, error)
}

// IncidentStore owns the authoritative state of incident rows.
type IncidentStore interface {
	// Insert persists a new incident and returns its id.
	Insert(ctx context.Context, inc *incident.Incident) (int64, error)

	// ListOpen returns open incidents, newest first.
	ListOpen(ctx context.Context, limit int) ([]incident.Summary, error)

	// Close sets the end timestamp of an open incident. It returns false
	// when the row is no longer open, so two racing close attempts cannot
	// both succeed.
	Close(ctx context.Context, id int64, endTime time.Time, durationMinutes int64) (bool, error)
}
