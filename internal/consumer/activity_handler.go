package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/domain"
	"github.com/keyurgolani/PrenatalLearning-sub004/internal/events"
)

// Event types the content features publish for activity-worthy actions.
const (
	EventStoryCompleted    = "story.completed"
	EventExerciseCompleted = "exercise.completed"
	EventJournalSaved      = "journal.saved"
)

// ActivityHandler turns consumed content events into RecordActivity calls on
// the streak engine. Redelivery after a handler failure is safe: a replayed
// event lands on the same calendar day and only appends to the log without
// changing the streak.
type ActivityHandler struct {
	service *domain.Service
}

// NewActivityHandler constructs a handler backed by the streak service.
func NewActivityHandler(service *domain.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Handle maps the event to an activity and records it. Unknown event types
// are skipped without error so shared topics can carry unrelated events.
func (h *ActivityHandler) Handle(ctx context.Context, msg Message) error {
	input, ok, err := activityInput(msg)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	_, err = h.service.RecordActivity(ctx, input)
	if errors.Is(err, domain.ErrInvalidOwnerID) {
		// A blank owner can never succeed on redelivery; drop it.
		return nil
	}
	return err
}

func activityInput(msg Message) (domain.RecordActivityInput, bool, error) {
	switch msg.EventType {
	case EventStoryCompleted:
		var payload events.StoryCompleted
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return domain.RecordActivityInput{}, false, fmt.Errorf("decode %s: %w", msg.EventType, err)
		}
		return domain.RecordActivityInput{
			OwnerID:      payload.UserID,
			ActivityType: domain.ActivityTypeStoryCompletion,
			ReferenceID:  payload.StoryID,
		}, true, nil
	case EventExerciseCompleted:
		var payload events.ExerciseCompleted
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return domain.RecordActivityInput{}, false, fmt.Errorf("decode %s: %w", msg.EventType, err)
		}
		return domain.RecordActivityInput{
			OwnerID:      payload.UserID,
			ActivityType: domain.ActivityTypeExerciseCompletion,
			ReferenceID:  payload.ExerciseID,
		}, true, nil
	case EventJournalSaved:
		var payload events.JournalSaved
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return domain.RecordActivityInput{}, false, fmt.Errorf("decode %s: %w", msg.EventType, err)
		}
		return domain.RecordActivityInput{
			OwnerID:      payload.UserID,
			ActivityType: domain.ActivityTypeJournalEntry,
			ReferenceID:  payload.EntryID,
		}, true, nil
	default:
		return domain.RecordActivityInput{}, false, nil
	}
}
