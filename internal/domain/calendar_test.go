package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
)

func TestActivityCalendarAggregatesPerDay(t *testing.T) {
	log := []ActivityLogEntry{
		{ID: "1", Date: "2024-02-03", Type: ActivityTypeStoryCompletion},
		{ID: "2", Date: "2024-02-03", Type: ActivityTypeStoryCompletion},
		{ID: "3", Date: "2024-02-03", Type: ActivityTypeJournalEntry},
		{ID: "4", Date: "2024-02-10", Type: ActivityTypeExerciseCompletion},
		{ID: "5", Date: "2024-03-01", Type: ActivityTypeStoryCompletion},
	}

	days := ActivityCalendar(log, 2024, time.February)
	require.Len(t, days, 2)

	require.Equal(t, dateutil.CalendarDay("2024-02-03"), days[0].Date)
	require.Equal(t, 3, days[0].ActivityCount)
	require.Equal(t, []ActivityType{ActivityTypeJournalEntry, ActivityTypeStoryCompletion}, days[0].ActivityTypes)

	require.Equal(t, dateutil.CalendarDay("2024-02-10"), days[1].Date)
	require.Equal(t, 1, days[1].ActivityCount)
}

func TestActivityCalendarEmptyMonth(t *testing.T) {
	log := []ActivityLogEntry{
		{ID: "1", Date: "2024-03-01", Type: ActivityTypeStoryCompletion},
	}
	require.Empty(t, ActivityCalendar(log, 2024, time.February))
	require.Empty(t, ActivityCalendar(nil, 2024, time.February))
}

func TestDistinctActivityDays(t *testing.T) {
	log := []ActivityLogEntry{
		{ID: "1", Date: "2024-02-03"},
		{ID: "2", Date: "2024-02-03"},
		{ID: "3", Date: "2024-02-04"},
	}
	require.Equal(t, 2, DistinctActivityDays(log))
	require.Equal(t, 0, DistinctActivityDays(nil))
}

func TestAverageActivitiesPerDay(t *testing.T) {
	log := []ActivityLogEntry{
		{ID: "1", Date: "2024-02-03"},
		{ID: "2", Date: "2024-02-03"},
		{ID: "3", Date: "2024-02-04"},
	}
	require.InDelta(t, 1.5, AverageActivitiesPerDay(log), 0.0001)
	require.Zero(t, AverageActivitiesPerDay(nil))
}
