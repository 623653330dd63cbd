package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/observability"
)

// Repository provides Postgres-backed persistence for streak records and
// outbox events. Records are stored whole, one row per owner, so every save
// is a single atomic upsert; per-owner write serialization is the caller's
// responsibility as documented on domain.RecordRepository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Load fetches the owner's record. A missing row returns (nil, nil). A row
// whose stored log or history cannot be parsed is treated the same way:
// the engine trades the malformed record for availability.
func (r *Repository) Load(ctx context.Context, ownerID string) (*domain.StreakRecord, error) {
	const query = `SELECT owner_id, current_streak, longest_streak, last_activity_date, activity_log, streak_history, created_at, updated_at
        FROM streak_records WHERE owner_id=$1`

	row := r.pool.QueryRow(ctx, query, ownerID)

	var (
		record     domain.StreakRecord
		lastDate   *string
		logRaw     []byte
		historyRaw []byte
	)
	if err := row.Scan(&record.OwnerID, &record.CurrentStreak, &record.LongestStreak, &lastDate, &logRaw, &historyRaw, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if lastDate != nil {
		record.LastActivityDate = dateutil.CalendarDay(*lastDate)
	}
	if err := json.Unmarshal(logRaw, &record.ActivityLog); err != nil {
		log.Printf("streak record for owner %s has unreadable activity log, treating as absent: %v", ownerID, err)
		return nil, nil
	}
	if err := json.Unmarshal(historyRaw, &record.StreakHistory); err != nil {
		log.Printf("streak record for owner %s has unreadable streak history, treating as absent: %v", ownerID, err)
		return nil, nil
	}
	return &record, nil
}

// Save upserts the record and appends outbox events in a single transaction.
func (r *Repository) Save(ctx context.Context, record *domain.StreakRecord, events []domain.OutboxEvent) error {
	logRaw, err := json.Marshal(record.ActivityLog)
	if err != nil {
		return err
	}
	historyRaw, err := json.Marshal(record.StreakHistory)
	if err != nil {
		return err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const upsert = `INSERT INTO streak_records (owner_id, current_streak, longest_streak, last_activity_date, activity_log, streak_history, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (owner_id) DO UPDATE SET
            current_streak = EXCLUDED.current_streak,
            longest_streak = EXCLUDED.longest_streak,
            last_activity_date = EXCLUDED.last_activity_date,
            activity_log = EXCLUDED.activity_log,
            streak_history = EXCLUDED.streak_history,
            updated_at = EXCLUDED.updated_at`

	_, err = tx.Exec(ctx, upsert,
		record.OwnerID,
		record.CurrentStreak,
		record.LongestStreak,
		nullIfEmpty(string(record.LastActivityDate)),
		logRaw,
		historyRaw,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err = r.insertOutbox(ctx, tx, record, event); err != nil {
			return err
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}
	observability.RecordStreakPersisted(record.UpdatedAt)
	for _, event := range events {
		switch event.Type {
		case domain.EventStreakMilestone:
			observability.RecordMilestone(strconv.Itoa(record.CurrentStreak))
		case domain.EventStreakBroken:
			observability.RecordStreakBroken()
		}
	}
	return nil
}

func (r *Repository) insertOutbox(ctx context.Context, tx pgx.Tx, record *domain.StreakRecord, event domain.OutboxEvent) error {
	body, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	meta := eventCatalog[event.Type]
	if meta.Topic == "" {
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	dedupeKey := fmt.Sprintf("%s:%s:%d", record.OwnerID, event.Type, record.UpdatedAt.UnixNano())

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err = tx.Exec(ctx, stmt,
		"streak_record",
		record.OwnerID,
		event.Type,
		meta.Topic,
		meta.SchemaSubject,
		record.OwnerID,
		body,
		dedupeKey,
	)
	return err
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic         string
	SchemaSubject string
}

var eventCatalog = map[string]EventMetadata{
	domain.EventStreakUpdated: {
		Topic:         "streak_updated",
		SchemaSubject: "streak_updated-value",
	},
	domain.EventStreakMilestone: {
		Topic:         "streak_milestones",
		SchemaSubject: "streak_milestones-value",
	},
	domain.EventStreakBroken: {
		Topic:         "streak_broken",
		SchemaSubject: "streak_broken-value",
	},
}
