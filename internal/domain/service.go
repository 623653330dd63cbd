// Package domain implements the activity-streak engine: streak calculation,
// milestone detection, streak history, calendar aggregation, and the service
// facade that orchestrates them per activity.
package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
)

var (
	// ErrUnknownActivityType is returned for tags outside the fixed set.
	ErrUnknownActivityType = errors.New("unknown activity type")
	// ErrInvalidOwnerID is returned when the owner identifier is blank.
	ErrInvalidOwnerID = errors.New("invalid owner id")
)

// Outbox event types recorded alongside the streak record.
const (
	EventStreakUpdated   = "streak.updated"
	EventStreakMilestone = "streak.milestone"
	EventStreakBroken    = "streak.broken"
)

// OutboxEvent pairs an event type with its payload for transactional
// persistence next to the record.
type OutboxEvent struct {
	Type    string
	Payload interface{}
}

// RecordRepository captures persistence for streak records. Load returns
// (nil, nil) when no record exists for the owner; implementations must also
// treat an unreadable stored record as absent rather than failing the call.
// Save must persist the record and its outbox events atomically.
//
// The engine performs whole-record load-modify-store and provides no mutual
// exclusion of its own: callers must serialize RecordActivity calls per
// owner (single-writer queue, per-owner lock, or a CAS at the persistence
// boundary). Calls for different owners are independent.
type RecordRepository interface {
	Load(ctx context.Context, ownerID string) (*StreakRecord, error)
	Save(ctx context.Context, record *StreakRecord, events []OutboxEvent) error
}

// Service orchestrates streak workflows over a RecordRepository.
type Service struct {
	repo RecordRepository
	now  func() time.Time
}

// ServiceOption configures optional Service behaviour.
type ServiceOption func(*Service)

// WithClock overrides the time source. The streak day boundary follows the
// location of the returned instants.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs a Service.
func NewService(repo RecordRepository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordActivityInput captures one activity-worthy action reported by a
// content feature.
type RecordActivityInput struct {
	OwnerID      string
	ActivityType ActivityType
	ReferenceID  string
}

// Cursor models the pagination token for activity-log listing.
type Cursor struct {
	RecordedAt time.Time
	ID         string
}

// RecordActivity appends the activity to the owner's log and recomputes the
// streak state: archives the previous streak if it was broken, recalculates
// current and longest streaks, and determines milestone novelty. Exactly one
// record read and one record write occur per call; if the write fails the
// call fails atomically and may be retried as a whole.
func (s *Service) RecordActivity(ctx context.Context, input RecordActivityInput) (*StreakUpdate, error) {
	if strings.TrimSpace(input.OwnerID) == "" {
		return nil, ErrInvalidOwnerID
	}
	if !ValidActivityType(input.ActivityType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivityType, input.ActivityType)
	}

	record, err := s.repo.Load(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if record == nil {
		record = NewStreakRecord(input.OwnerID, now)
	}
	today := dateutil.FormatDay(now)

	previousStreak := CalculateCurrentStreak(record.ActivityLog, today)
	previousLastDate := record.LastActivityDate

	wasBroken := false
	if previousLastDate != "" {
		gap, gapErr := dateutil.DayDifference(previousLastDate, today)
		wasBroken = gapErr == nil && gap > 1
	}

	events := make([]OutboxEvent, 0, 3)

	history := record.StreakHistory
	if wasBroken && record.CurrentStreak > 0 {
		archived, archiveErr := BrokenStreakEntry(record.CurrentStreak, previousLastDate)
		if archiveErr != nil {
			return nil, archiveErr
		}
		history = append(append([]StreakHistoryEntry(nil), history...), archived)
		events = append(events, OutboxEvent{Type: EventStreakBroken, Payload: brokenPayload(record.OwnerID, archived, now)})
	}

	entry := ActivityLogEntry{
		ID:          uuid.NewString(),
		Date:        today,
		Type:        input.ActivityType,
		ReferenceID: input.ReferenceID,
		RecordedAt:  now,
	}
	log := append(append([]ActivityLogEntry(nil), record.ActivityLog...), entry)

	newStreak := CalculateCurrentStreak(log, today)
	longest := LongestStreak(history, newStreak)
	if record.LongestStreak > longest {
		longest = record.LongestStreak
	}

	milestone, found := DetectMilestone(newStreak)
	isNewMilestone := found && (previousStreak < milestone || wasBroken)

	record.ActivityLog = log
	record.StreakHistory = history
	record.CurrentStreak = newStreak
	record.LongestStreak = longest
	record.LastActivityDate = today
	record.UpdatedAt = now

	events = append(events, OutboxEvent{Type: EventStreakUpdated, Payload: updatedPayload(record, input.ActivityType, now)})
	if isNewMilestone {
		events = append(events, OutboxEvent{Type: EventStreakMilestone, Payload: milestonePayload(record.OwnerID, milestone, newStreak, now)})
	}

	if err := s.repo.Save(ctx, record, events); err != nil {
		return nil, err
	}

	update := &StreakUpdate{
		CurrentStreak:  newStreak,
		LongestStreak:  longest,
		IsNewMilestone: isNewMilestone,
	}
	if isNewMilestone {
		update.Milestone = milestone
	}
	return update, nil
}

// GetCurrentStreak returns the owner's streak as of now, recomputed from the
// log so an elapsed grace period reads as 0 even before the next write.
func (s *Service) GetCurrentStreak(ctx context.Context, ownerID string) (int, error) {
	record, err := s.load(ctx, ownerID)
	if err != nil || record == nil {
		return 0, err
	}
	return CalculateCurrentStreak(record.ActivityLog, dateutil.FormatDay(s.now())), nil
}

// GetLongestStreak returns the longest streak ever achieved by the owner.
func (s *Service) GetLongestStreak(ctx context.Context, ownerID string) (int, error) {
	record, err := s.load(ctx, ownerID)
	if err != nil || record == nil {
		return 0, err
	}
	return record.LongestStreak, nil
}

// GetStreakHistory returns the archive of completed streaks, oldest first.
func (s *Service) GetStreakHistory(ctx context.Context, ownerID string) ([]StreakHistoryEntry, error) {
	record, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []StreakHistoryEntry{}, nil
	}
	return append([]StreakHistoryEntry(nil), record.StreakHistory...), nil
}

// GetActivityCalendar returns the per-day activity summary for a month.
func (s *Service) GetActivityCalendar(ctx context.Context, ownerID string, year int, month time.Month) ([]ActivityDay, error) {
	record, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []ActivityDay{}, nil
	}
	return ActivityCalendar(record.ActivityLog, year, month), nil
}

// GetStreakStats bundles the headline statistics for the owner.
func (s *Service) GetStreakStats(ctx context.Context, ownerID string) (*StreakStats, error) {
	record, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &StreakStats{}, nil
	}
	return &StreakStats{
		CurrentStreak:           CalculateCurrentStreak(record.ActivityLog, dateutil.FormatDay(s.now())),
		LongestStreak:           record.LongestStreak,
		TotalLearningDays:       DistinctActivityDays(record.ActivityLog),
		AverageActivitiesPerDay: AverageActivitiesPerDay(record.ActivityLog),
		LastActivityDate:        record.LastActivityDate,
	}, nil
}

// ListActivityLog pages through the owner's activity log, most recent first.
func (s *Service) ListActivityLog(ctx context.Context, ownerID string, cursor *Cursor, limit int) ([]ActivityLogEntry, *Cursor, error) {
	record, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return []ActivityLogEntry{}, nil, nil
	}

	entries := append([]ActivityLogEntry(nil), record.ActivityLog...)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})

	start := len(entries)
	if cursor == nil {
		start = 0
	} else {
		for i, entry := range entries {
			if entry.RecordedAt.Before(cursor.RecordedAt) ||
				(entry.RecordedAt.Equal(cursor.RecordedAt) && entry.ID < cursor.ID) {
				start = i
				break
			}
		}
	}

	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	page := entries[start:end]

	var next *Cursor
	if end < len(entries) && len(page) > 0 {
		last := page[len(page)-1]
		next = &Cursor{RecordedAt: last.RecordedAt, ID: last.ID}
	}
	return page, next, nil
}

func (s *Service) load(ctx context.Context, ownerID string) (*StreakRecord, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidOwnerID
	}
	return s.repo.Load(ctx, ownerID)
}
