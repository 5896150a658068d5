package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/askhatov/lossbot/internal/domain/incident"
	"go.uber.org/zap"
)

// IncidentRepository handles incident row persistence. Timestamps are
// stored in UTC and converted back at the engine boundary.
type IncidentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIncidentRepository creates a new incident repository.
func NewIncidentRepository(db *sql.DB, logger *zap.Logger) *IncidentRepository {
	return &IncidentRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a new incident and returns its id.
func (r *IncidentRepository) Insert(ctx context.Context, inc *incident.Incident) (int64, error) {
	query := `
		INSERT INTO incidents (
			manager_id, restaurant_id, start_time, end_time,
			reason, comment, amount, status, duration_minutes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var endTime any
	if inc.EndTime != nil {
		endTime = inc.EndTime.UTC()
	}
	var duration any
	if inc.DurationMinutes != nil {
		duration = *inc.DurationMinutes
	}

	result, err := r.db.ExecContext(ctx, query,
		inc.ManagerID,
		inc.RestaurantID,
		inc.StartTime.UTC(),
		endTime,
		inc.Reason.String(),
		inc.Comment,
		inc.Amount,
		inc.Status.String(),
		duration,
	)
	if err != nil {
		r.logger.Error("Failed to insert incident", zap.Error(err))
		return 0, fmt.Errorf("failed to insert incident: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	inc.ID = id
	return id, nil
}

// ListOpen returns open incidents joined with their reference names,
// newest first.
func (r *IncidentRepository) ListOpen(ctx context.Context, limit int) ([]incident.Summary, error) {
	query := `
		SELECT i.id, i.start_time, i.reason, i.amount, r.name, m.name
		FROM incidents i
		JOIN restaurants r ON r.id = i.restaurant_id
		JOIN managers m ON m.id = i.manager_id
		WHERE i.status = 'open'
		ORDER BY i.start_time DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list open incidents", zap.Error(err))
		return nil, fmt.Errorf("failed to list open incidents: %w", err)
	}
	defer rows.Close()

	var opens []incident.Summary
	for rows.Next() {
		var s incident.Summary
		var reason string
		if err := rows.Scan(&s.ID, &s.StartTime, &reason, &s.Amount, &s.RestaurantName, &s.ManagerName); err != nil {
			return nil, fmt.Errorf("failed to scan open incident: %w", err)
		}
		s.Reason = incident.Reason(reason)
		opens = append(opens, s)
	}
	return opens, rows.Err()
}

// Close sets the end timestamp of an incident, conditioned on the row
// still being open. The status check and the update are a single
// statement, so two racing close attempts cannot both see rows affected.
func (r *IncidentRepository) Close(ctx context.Context, id int64, endTime time.Time, durationMinutes int64) (bool, error) {
	query := `
		UPDATE incidents
		SET end_time = ?, status = 'closed', duration_minutes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'open'
	`

	result, err := r.db.ExecContext(ctx, query, endTime.UTC(), durationMinutes, id)
	if err != nil {
		r.logger.Error("Failed to close incident", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to close incident: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected == 1, nil
}

// GetByID retrieves a single incident row, nil when absent.
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*incident.Incident, error) {
	query := `
		SELECT id, manager_id, restaurant_id, start_time, end_time,
			reason, comment, amount, status, duration_minutes,
			created_at, updated_at
		FROM incidents
		WHERE id = ?
	`

	var inc incident.Incident
	var reason, status string
	var endTime sql.NullTime
	var duration sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inc.ID,
		&inc.ManagerID,
		&inc.RestaurantID,
		&inc.StartTime,
		&endTime,
		&reason,
		&inc.Comment,
		&inc.Amount,
		&status,
		&duration,
		&inc.CreatedAt,
		&inc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get incident", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}

	inc.Reason = incident.Reason(reason)
	inc.Status = incident.Status(status)
	if endTime.Valid {
		inc.EndTime = &endTime.Time
	}
	if duration.Valid {
		inc.DurationMinutes = &duration.Int64
	}
	return &inc, nil
}
