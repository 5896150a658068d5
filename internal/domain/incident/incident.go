package incident

import (
	"strings"
	"time"
)

// Manager is a territory manager who can report incidents.
// Reference data, never mutated by the bot.
type Manager struct {
	ID   int64
	Name string
}

// Restaurant is a point of sale attached to one or more managers.
type Restaurant struct {
	ID   int64
	Name string
}

// Incident is a persisted sales-loss record. EndTime is nil while the
// incident is open; DurationMinutes is set only once it is closed.
type Incident struct {
	ID              int64
	ManagerID       int64
	RestaurantID    int64
	StartTime       time.Time
	EndTime         *time.Time
	Reason          Reason
	Comment         string
	Amount          int64
	Status          Status
	DurationMinutes *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Summary is the projection shown when picking an open incident to close.
type Summary struct {
	ID             int64
	StartTime      time.Time
	Reason         Reason
	Amount         int64
	RestaurantName string
	ManagerName    string
}

// CommentPlaceholder is stored when the user leaves the comment empty.
const CommentPlaceholder = "—"

// NormalizeComment trims the raw comment and maps the explicit "no comment"
// inputs onto the stored placeholder.
func NormalizeComment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" || trimmed == CommentPlaceholder {
		return CommentPlaceholder
	}
	return trimmed
}
