package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/persistence/memory"
)

func newTestHandler(now time.Time) (*ActivityHandler, *memory.Store) {
	store := memory.NewStore()
	service := domain.NewService(store, domain.WithClock(func() time.Time { return now }))
	return NewActivityHandler(service), store
}

func TestActivityHandlerRecordsStoryCompletion(t *testing.T) {
	now := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	handler, store := newTestHandler(now)

	payload, err := json.Marshal(map[string]string{
		"user_id":  "learner-1",
		"story_id": "story-9",
	})
	require.NoError(t, err)

	err = handler.Handle(context.Background(), Message{
		Topic:     "story_events",
		EventType: EventStoryCompleted,
		Payload:   payload,
	})
	require.NoError(t, err)

	record, err := store.Load(context.Background(), "learner-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, 1, record.CurrentStreak)
	require.Len(t, record.ActivityLog, 1)
	require.Equal(t, domain.ActivityTypeStoryCompletion, record.ActivityLog[0].Type)
	require.Equal(t, "story-9", record.ActivityLog[0].ReferenceID)
}

func TestActivityHandlerSkipsUnknownEventType(t *testing.T) {
	handler, store := newTestHandler(time.Now().UTC())

	err := handler.Handle(context.Background(), Message{
		Topic:     "story_events",
		EventType: "story.rated",
		Payload:   json.RawMessage(`{"user_id":"learner-1"}`),
	})
	require.NoError(t, err)

	record, err := store.Load(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Nil(t, record, "unrelated events must not create records")
}

func TestActivityHandlerDropsBlankOwner(t *testing.T) {
	handler, store := newTestHandler(time.Now().UTC())

	err := handler.Handle(context.Background(), Message{
		Topic:     "journal_events",
		EventType: EventJournalSaved,
		Payload:   json.RawMessage(`{"user_id":"","entry_id":"entry-1"}`),
	})
	require.NoError(t, err, "blank owners are dropped, not retried")

	record, err := store.Load(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestActivityHandlerRejectsMalformedPayload(t *testing.T) {
	handler, _ := newTestHandler(time.Now().UTC())

	err := handler.Handle(context.Background(), Message{
		Topic:     "exercise_events",
		EventType: EventExerciseCompleted,
		Payload:   json.RawMessage(`{"user_id":`),
	})
	require.Error(t, err)
}
