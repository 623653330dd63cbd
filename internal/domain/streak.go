package domain

import (
	"sort"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
)

// Milestones is the fixed, ordered set of streak lengths that trigger a
// one-time celebratory signal.
var Milestones = []int{7, 30, 100}

// CalculateCurrentStreak derives the length of the active streak from the
// activity log as seen on the given day. Duplicate activities on one day
// count once. A streak stays alive for one calendar day after the last
// recorded activity (the grace period); a gap of two or more days breaks it.
func CalculateCurrentStreak(log []ActivityLogEntry, today dateutil.CalendarDay) int {
	days := distinctDaysDescending(log)
	if len(days) == 0 {
		return 0
	}

	mostRecent := days[0]
	gap, err := dateutil.DayDifference(mostRecent, today)
	if err != nil || gap > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !dateutil.AreConsecutiveDays(days[i], days[i-1]) {
			break
		}
		streak++
	}
	return streak
}

// DetectMilestone reports whether the streak length is a milestone. Novelty
// (whether the milestone was already celebrated this streak) is the
// Service's concern, not the detector's.
func DetectMilestone(streakLength int) (int, bool) {
	for _, m := range Milestones {
		if streakLength == m {
			return m, true
		}
	}
	return 0, false
}

// BrokenStreakEntry builds the archive entry for a streak that ended on
// lastActivityDate with the given length. The start date is derived by
// walking length-1 days back from the end.
func BrokenStreakEntry(length int, lastActivityDate dateutil.CalendarDay) (StreakHistoryEntry, error) {
	start, err := dateutil.AddDays(lastActivityDate, -(length - 1))
	if err != nil {
		return StreakHistoryEntry{}, err
	}
	return StreakHistoryEntry{
		StartDate: start,
		EndDate:   lastActivityDate,
		Length:    length,
	}, nil
}

// LongestStreak returns the maximum of all archived lengths and the current
// streak; an empty history contributes 0.
func LongestStreak(history []StreakHistoryEntry, currentStreak int) int {
	longest := currentStreak
	for _, h := range history {
		if h.Length > longest {
			longest = h.Length
		}
	}
	return longest
}

// distinctDaysDescending collects the set of calendar days present in the
// log, most recent first. Entries with unparseable dates are skipped rather
// than poisoning the whole computation.
func distinctDaysDescending(log []ActivityLogEntry) []dateutil.CalendarDay {
	seen := make(map[dateutil.CalendarDay]struct{}, len(log))
	days := make([]dateutil.CalendarDay, 0, len(log))
	for _, entry := range log {
		if _, err := dateutil.ParseDay(entry.Date); err != nil {
			continue
		}
		if _, dup := seen[entry.Date]; dup {
			continue
		}
		seen[entry.Date] = struct{}{}
		days = append(days, entry.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}
