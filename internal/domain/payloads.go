package domain

import (
	"time"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/events"
)

func updatedPayload(record *StreakRecord, activityType ActivityType, now time.Time) events.StreakUpdated {
	return events.StreakUpdated{
		OwnerID:          record.OwnerID,
		ActivityType:     string(activityType),
		CurrentStreak:    record.CurrentStreak,
		LongestStreak:    record.LongestStreak,
		LastActivityDate: string(record.LastActivityDate),
		OccurredAt:       now.UTC(),
	}
}

func milestonePayload(ownerID string, milestone, currentStreak int, now time.Time) events.StreakMilestone {
	return events.StreakMilestone{
		OwnerID:       ownerID,
		Milestone:     milestone,
		CurrentStreak: currentStreak,
		OccurredAt:    now.UTC(),
	}
}

func brokenPayload(ownerID string, archived StreakHistoryEntry, now time.Time) events.StreakBroken {
	return events.StreakBroken{
		OwnerID:    ownerID,
		StartDate:  string(archived.StartDate),
		EndDate:    string(archived.EndDate),
		Length:     archived.Length,
		OccurredAt: now.UTC(),
	}
}
