package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/askhatov/lossbot/internal/domain/incident"
	"go.uber.org/zap"
)

// ReferenceRepository serves the read-only manager and restaurant data.
type ReferenceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReferenceRepository creates a new reference repository.
func NewReferenceRepository(db *sql.DB, logger *zap.Logger) *ReferenceRepository {
	return &ReferenceRepository{
		db:     db,
		logger: logger,
	}
}

// ListManagers returns all managers ordered by name.
func (r *ReferenceRepository) ListManagers(ctx context.Context) ([]incident.Manager, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM managers ORDER BY name`)
	if err != nil {
		r.logger.Error("Failed to list managers", zap.Error(err))
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var managers []incident.Manager
	for rows.Next() {
		var m incident.Manager
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, m)
	}
	return managers, rows.Err()
}

// ListRestaurants returns the restaurants attached to a manager, ordered
// by name.
func (r *ReferenceRepository) ListRestaurants(ctx context.Context, managerID int64) ([]incident.Restaurant, error) {
	query := `
		SELECT r.id, r.name
		FROM restaurants r
		JOIN manager_restaurants mr ON mr.restaurant_id = r.id
		WHERE mr.manager_id = ?
		ORDER BY r.name
	`

	rows, err := r.db.QueryContext(ctx, query, managerID)
	if err != nil {
		r.logger.Error("Failed to list restaurants", zap.Int64("manager_id", managerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []incident.Restaurant
	for rows.Next() {
		var rest incident.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}
