//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
)

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()

	pool := startDatabase(t, ctx)
	repo := NewRepository(pool)

	ownerID := uuid.NewString()

	missing, err := repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.Nil(t, missing)

	now := time.Now().UTC().Truncate(time.Microsecond)
	record := domain.NewStreakRecord(ownerID, now)
	record.CurrentStreak = 3
	record.LongestStreak = 5
	record.LastActivityDate = "2024-03-05"
	record.ActivityLog = []domain.ActivityLogEntry{
		{
			ID:         uuid.NewString(),
			Date:       "2024-03-05",
			Type:       domain.ActivityTypeStoryCompletion,
			RecordedAt: now,
		},
	}
	record.StreakHistory = []domain.StreakHistoryEntry{
		{StartDate: "2024-02-01", EndDate: "2024-02-05", Length: 5},
	}

	events := []domain.OutboxEvent{
		{Type: domain.EventStreakUpdated, Payload: map[string]any{"owner_id": ownerID, "current_streak": 3}},
	}
	require.NoError(t, repo.Save(ctx, record, events))

	stored, err := repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, 3, stored.CurrentStreak)
	require.Equal(t, 5, stored.LongestStreak)
	require.Len(t, stored.ActivityLog, 1)
	require.Equal(t, domain.ActivityTypeStoryCompletion, stored.ActivityLog[0].Type)
	require.Len(t, stored.StreakHistory, 1)
	require.Equal(t, 5, stored.StreakHistory[0].Length)

	var outboxCount int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE aggregate_id = $1 AND published_at IS NULL`, ownerID,
	).Scan(&outboxCount))
	require.Equal(t, 1, outboxCount)
}

func TestRepositoryTreatsCorruptRecordAsMissing(t *testing.T) {
	ctx := context.Background()

	pool := startDatabase(t, ctx)
	repo := NewRepository(pool)

	ownerID := uuid.NewString()
	_, err := pool.Exec(ctx,
		`INSERT INTO streak_records (owner_id, current_streak, longest_streak, activity_log, streak_history)
         VALUES ($1, 2, 2, '{"not":"an array"}'::jsonb, '[]'::jsonb)`, ownerID)
	require.NoError(t, err)

	stored, err := repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.Nil(t, stored, "corrupt records are treated as absent so the owner can start fresh")
}

func startDatabase(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("learning"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
		"../../../db/postgres/migrations/0002_outbox_dlq_retry.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
