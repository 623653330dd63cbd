// Package events defines event payloads shared with the platform's content
// features.
package events

import "time"

// StreakUpdated is emitted after every accepted activity with the
// recalculated streak values.
type StreakUpdated struct {
	OwnerID          string    `json:"owner_id"`
	ActivityType     string    `json:"activity_type"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate string    `json:"last_activity_date"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// StreakMilestone is emitted once per streak when a milestone length is
// first reached.
type StreakMilestone struct {
	OwnerID       string    `json:"owner_id"`
	Milestone     int       `json:"milestone"`
	CurrentStreak int       `json:"current_streak"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StreakBroken is emitted when a gap of more than one day ends a streak and
// its span is archived.
type StreakBroken struct {
	OwnerID    string    `json:"owner_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Length     int       `json:"length"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Inbound payloads produced by the content features. Each one marks an
// activity-worthy action for the streak engine.

// StoryCompleted is published by the story feature when a user finishes a
// story session.
type StoryCompleted struct {
	UserID      string    `json:"user_id"`
	StoryID     string    `json:"story_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// ExerciseCompleted is published by the exercise feature.
type ExerciseCompleted struct {
	UserID      string    `json:"user_id"`
	ExerciseID  string    `json:"exercise_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// JournalSaved is published by the journal feature when an entry is saved.
type JournalSaved struct {
	UserID  string    `json:"user_id"`
	EntryID string    `json:"entry_id"`
	SavedAt time.Time `json:"saved_at"`
}
