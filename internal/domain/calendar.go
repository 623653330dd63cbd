package domain

import (
	"sort"
	"time"

	"github.com/keyurgolani/PrenatalLearning-sub004/internal/dateutil"
)

// ActivityCalendar groups the log into per-day summaries for the given year
// and month. Days without activity are omitted; callers render blanks
// themselves. Entries are sorted ascending by date and activity types are
// deduplicated per day.
func ActivityCalendar(log []ActivityLogEntry, year int, month time.Month) []ActivityDay {
	type dayAccum struct {
		count int
		types map[ActivityType]struct{}
	}

	byDay := make(map[dateutil.CalendarDay]*dayAccum)
	for _, entry := range log {
		if !dateutil.InMonth(entry.Date, year, month) {
			continue
		}
		acc, ok := byDay[entry.Date]
		if !ok {
			acc = &dayAccum{types: make(map[ActivityType]struct{})}
			byDay[entry.Date] = acc
		}
		acc.count++
		acc.types[entry.Type] = struct{}{}
	}

	days := make([]ActivityDay, 0, len(byDay))
	for date, acc := range byDay {
		types := make([]ActivityType, 0, len(acc.types))
		for t := range acc.types {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		days = append(days, ActivityDay{
			Date:          date,
			ActivityCount: acc.count,
			ActivityTypes: types,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// DistinctActivityDays counts the calendar days with at least one activity.
func DistinctActivityDays(log []ActivityLogEntry) int {
	seen := make(map[dateutil.CalendarDay]struct{}, len(log))
	for _, entry := range log {
		seen[entry.Date] = struct{}{}
	}
	return len(seen)
}

// AverageActivitiesPerDay divides total activities by distinct activity
// days, returning 0 for an empty log.
func AverageActivitiesPerDay(log []ActivityLogEntry) float64 {
	days := DistinctActivityDays(log)
	if days == 0 {
		return 0
	}
	return float64(len(log)) / float64(days)
}
