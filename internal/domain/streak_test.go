package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
)

func logFor(days ...dateutil.CalendarDay) []ActivityLogEntry {
	log := make([]ActivityLogEntry, 0, len(days))
	for i, day := range days {
		log = append(log, ActivityLogEntry{
			ID:         string(rune('a' + i)),
			Date:       day,
			Type:       ActivityTypeStoryCompletion,
			RecordedAt: time.Now().UTC(),
		})
	}
	return log
}

func TestCalculateCurrentStreakConsecutiveDays(t *testing.T) {
	log := logFor("2024-01-01", "2024-01-02", "2024-01-03")
	require.Equal(t, 3, CalculateCurrentStreak(log, "2024-01-03"))
}

func TestCalculateCurrentStreakGracePeriod(t *testing.T) {
	log := logFor("2024-01-01", "2024-01-02", "2024-01-03")

	// One day after the last activity the streak is still alive.
	require.Equal(t, 3, CalculateCurrentStreak(log, "2024-01-04"))

	// Two or more days after, it is broken.
	require.Equal(t, 0, CalculateCurrentStreak(log, "2024-01-05"))
}

func TestCalculateCurrentStreakDuplicateDaysCountOnce(t *testing.T) {
	log := logFor("2024-01-01", "2024-01-02", "2024-01-02", "2024-01-02")
	require.Equal(t, 2, CalculateCurrentStreak(log, "2024-01-02"))
}

func TestCalculateCurrentStreakStopsAtGap(t *testing.T) {
	log := logFor("2024-01-01", "2024-01-02", "2024-01-05", "2024-01-06")
	require.Equal(t, 2, CalculateCurrentStreak(log, "2024-01-06"))
}

func TestCalculateCurrentStreakEmptyLog(t *testing.T) {
	require.Equal(t, 0, CalculateCurrentStreak(nil, "2024-01-01"))
}

func TestCalculateCurrentStreakSkipsUnparseableDates(t *testing.T) {
	log := logFor("2024-01-01", "2024-01-02")
	log = append(log, ActivityLogEntry{ID: "x", Date: "garbage", Type: ActivityTypeJournalEntry})
	require.Equal(t, 2, CalculateCurrentStreak(log, "2024-01-02"))
}

func TestDetectMilestone(t *testing.T) {
	for _, m := range []int{7, 30, 100} {
		milestone, found := DetectMilestone(m)
		require.True(t, found)
		require.Equal(t, m, milestone)
	}
	for _, n := range []int{0, 1, 6, 8, 29, 31, 99, 101} {
		_, found := DetectMilestone(n)
		require.False(t, found, "length %d must not be a milestone", n)
	}
}

func TestBrokenStreakEntry(t *testing.T) {
	entry, err := BrokenStreakEntry(10, "2024-02-10")
	require.NoError(t, err)
	require.Equal(t, dateutil.CalendarDay("2024-02-01"), entry.StartDate)
	require.Equal(t, dateutil.CalendarDay("2024-02-10"), entry.EndDate)
	require.Equal(t, 10, entry.Length)

	single, err := BrokenStreakEntry(1, "2024-02-10")
	require.NoError(t, err)
	require.Equal(t, single.StartDate, single.EndDate)
}

func TestLongestStreak(t *testing.T) {
	history := []StreakHistoryEntry{
		{StartDate: "2024-01-01", EndDate: "2024-01-05", Length: 5},
		{StartDate: "2024-02-01", EndDate: "2024-02-12", Length: 12},
	}
	require.Equal(t, 12, LongestStreak(history, 3))
	require.Equal(t, 15, LongestStreak(history, 15))
	require.Equal(t, 4, LongestStreak(nil, 4))
	require.Equal(t, 0, LongestStreak(nil, 0))
}
