package domain

import (
	"time"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
)

// ActivityType tags the feature that produced an activity-worthy action.
type ActivityType string

const (
	ActivityTypeStoryCompletion    ActivityType = "story-completion"
	ActivityTypeExerciseCompletion ActivityType = "exercise-completion"
	ActivityTypeJournalEntry       ActivityType = "journal-entry"
)

var knownActivityTypes = map[ActivityType]struct{}{
	ActivityTypeStoryCompletion:    {},
	ActivityTypeExerciseCompletion: {},
	ActivityTypeJournalEntry:       {},
}

// ValidActivityType reports whether the tag belongs to the fixed set.
func ValidActivityType(t ActivityType) bool {
	_, ok := knownActivityTypes[t]
	return ok
}

// ActivityLogEntry is one recorded unit of engagement. Entries are immutable
// once created; the log is append-only.
type ActivityLogEntry struct {
	ID          string               `json:"id"`
	Date        dateutil.CalendarDay `json:"date"`
	Type        ActivityType         `json:"type"`
	ReferenceID string               `json:"reference_id,omitempty"`
	RecordedAt  time.Time            `json:"recorded_at"`
}

// StreakHistoryEntry is an archived, completed streak. Created only when an
// active streak breaks; length always equals the inclusive day count between
// start and end.
type StreakHistoryEntry struct {
	StartDate dateutil.CalendarDay `json:"start_date"`
	EndDate   dateutil.CalendarDay `json:"end_date"`
	Length    int                  `json:"length"`
}

// StreakRecord is the per-owner aggregate root. It is mutated only by the
// Service in response to RecordActivity and persisted as a whole.
type StreakRecord struct {
	OwnerID          string               `json:"owner_id"`
	CurrentStreak    int                  `json:"current_streak"`
	LongestStreak    int                  `json:"longest_streak"`
	LastActivityDate dateutil.CalendarDay `json:"last_activity_date,omitempty"`
	ActivityLog      []ActivityLogEntry   `json:"activity_log"`
	StreakHistory    []StreakHistoryEntry `json:"streak_history"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// NewStreakRecord returns the empty record created on an owner's first
// activity.
func NewStreakRecord(ownerID string, now time.Time) *StreakRecord {
	return &StreakRecord{
		OwnerID:       ownerID,
		ActivityLog:   make([]ActivityLogEntry, 0, 1),
		StreakHistory: make([]StreakHistoryEntry, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// StreakUpdate summarises the outcome of a RecordActivity call.
type StreakUpdate struct {
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	IsNewMilestone bool `json:"is_new_milestone"`
	Milestone      int  `json:"milestone,omitempty"`
}

// ActivityDay is one calendar entry in the monthly activity view.
type ActivityDay struct {
	Date          dateutil.CalendarDay `json:"date"`
	ActivityCount int                  `json:"activity_count"`
	ActivityTypes []ActivityType       `json:"activity_types"`
}

// StreakStats bundles the headline numbers for the statistics view.
type StreakStats struct {
	CurrentStreak           int                  `json:"current_streak"`
	LongestStreak           int                  `json:"longest_streak"`
	TotalLearningDays       int                  `json:"total_learning_days"`
	AverageActivitiesPerDay float64              `json:"average_activities_per_day"`
	LastActivityDate        dateutil.CalendarDay `json:"last_activity_date,omitempty"`
}
