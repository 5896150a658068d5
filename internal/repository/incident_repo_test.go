package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/askhatov/lossbot/internal/domain/incident"
	"github.com/askhatov/lossbot/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testDB opens a throwaway sqlite file with the real schema applied and
// the reference rows the incident tests hang off.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.RunMigrations(filepath.Join("..", "..", "migrations")))

	seed := []string{
		`INSERT INTO managers (id, name) VALUES (1, 'Ivanov'), (2, 'Petrov')`,
		`INSERT INTO restaurants (id, name) VALUES (10, 'Restaurant-1'), (11, 'Restaurant-2')`,
		`INSERT INTO manager_restaurants (manager_id, restaurant_id) VALUES (1, 10), (1, 11), (2, 11)`,
	}
	for _, q := range seed {
		_, err := db.Exec(q)
		require.NoError(t, err)
	}
	return db
}

func openIncident(start time.Time) *incident.Incident {
	return &incident.Incident{
		ManagerID:    1,
		RestaurantID: 10,
		StartTime:    start,
		Reason:       incident.ReasonExternal,
		Comment:      incident.CommentPlaceholder,
		Amount:       50000,
		Status:       incident.StatusOpen,
	}
}

func TestIncidentRepository_InsertAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, openIncident(start))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(1), got.ManagerID)
	assert.Equal(t, int64(10), got.RestaurantID)
	assert.True(t, got.StartTime.Equal(start))
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.DurationMinutes)
	assert.Equal(t, incident.StatusOpen, got.Status)
	assert.Equal(t, incident.ReasonExternal, got.Reason)
	assert.Equal(t, incident.CommentPlaceholder, got.Comment)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestIncidentRepository_InsertClosed(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	minutes := int64(90)

	inc := openIncident(start)
	inc.EndTime = &end
	inc.DurationMinutes = &minutes
	inc.Status = incident.StatusClosed

	id, err := repo.Insert(ctx, inc)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(end))
	require.NotNil(t, got.DurationMinutes)
	assert.Equal(t, int64(90), *got.DurationMinutes)
	assert.Equal(t, incident.StatusClosed, got.Status)
}

func TestIncidentRepository_InsertRejectsUnknownManager(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())

	inc := openIncident(time.Now().UTC())
	inc.ManagerID = 999

	_, err := repo.Insert(context.Background(), inc)
	assert.Error(t, err, "foreign keys are on, unknown references must fail")
}

func TestIncidentRepository_GetByID_Missing(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())

	got, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIncidentRepository_ListOpen(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)

	oldest, err := repo.Insert(ctx, openIncident(base.Add(-2*time.Hour)))
	require.NoError(t, err)
	newest, err := repo.Insert(ctx, openIncident(base))
	require.NoError(t, err)

	// A closed row must never show up.
	minutes := int64(30)
	end := base.Add(30 * time.Minute)
	closed := openIncident(base.Add(-time.Hour))
	closed.EndTime = &end
	closed.DurationMinutes = &minutes
	closed.Status = incident.StatusClosed
	_, err = repo.Insert(ctx, closed)
	require.NoError(t, err)

	opens, err := repo.ListOpen(ctx, 10)
	require.NoError(t, err)
	require.Len(t, opens, 2)

	assert.Equal(t, newest, opens[0].ID, "newest first")
	assert.Equal(t, oldest, opens[1].ID)
	assert.Equal(t, "Restaurant-1", opens[0].RestaurantName)
	assert.Equal(t, "Ivanov", opens[0].ManagerName)

	limited, err := repo.ListOpen(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newest, limited[0].ID)
}

func TestIncidentRepository_Close(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	start := time.Date(2025, 6, 9, 13, 0, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, openIncident(start))
	require.NoError(t, err)

	end := time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC)
	closed, err := repo.Close(ctx, id, end, 420)
	require.NoError(t, err)
	assert.True(t, closed)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, incident.StatusClosed, got.Status)
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(end))
	require.NotNil(t, got.DurationMinutes)
	assert.Equal(t, int64(420), *got.DurationMinutes)

	// The second close loses the conditional update.
	again, err := repo.Close(ctx, id, end.Add(time.Hour), 480)
	require.NoError(t, err)
	assert.False(t, again, "a closed incident cannot be closed twice")

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.EndTime.Equal(end), "the losing close must not overwrite the end time")
}

func TestIncidentRepository_CloseMissing(t *testing.T) {
	db := testDB(t)
	repo := NewIncidentRepository(db.DB, zap.NewNop())

	closed, err := repo.Close(context.Background(), 12345, time.Now().UTC(), 10)
	require.NoError(t, err)
	assert.False(t, closed)
}
