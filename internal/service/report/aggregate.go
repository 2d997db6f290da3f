package report

import (
	"sort"
	"strings"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
)

// NameCanonicalizer folds person-name variants into a single reporting
// key. Identity resolution is pluggable: callers with a roster can
// inject their own mapping, the engine itself stays string-keyed.
type NameCanonicalizer func(string) string

// DefaultCanonicalizer trims and uppercases, which collapses the
// capitalization noise typical of portaria exports.
func DefaultCanonicalizer(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Weekday labels as the source system displays them, indexed by
// time.Weekday (Sunday first).
var weekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Aggregate computes per-person distinct-day presence for one calendar
// month. Events outside the month are skipped, matched against the
// timestamp's own calendar month and year. Many same-day events count
// as one presence day and increment the day's weekday bucket once.
// People without events in the window produce no row at all. Output is
// ordered by distinct days descending; ties carry no defined order.
func Aggregate(events []presence.Event, month time.Month, year int, canon NameCanonicalizer) []presence.MonthlySummary {
	if canon == nil {
		canon = DefaultCanonicalizer
	}

	type personDays struct {
		days     map[string]struct{}
		weekdays map[string]int
	}

	byPerson := make(map[string]*personDays)

	for _, ev := range events {
		ts := ev.RecordedAt
		if ts.Month() != month || ts.Year() != year {
			continue
		}

		key := canon(ev.PersonName)
		if key == "" {
			continue
		}

		bucket := byPerson[key]
		if bucket == nil {
			bucket = &personDays{
				days:     make(map[string]struct{}),
				weekdays: make(map[string]int),
			}
			byPerson[key] = bucket
		}

		day := ts.Format("2006-01-02")
		if _, seen := bucket.days[day]; !seen {
			bucket.days[day] = struct{}{}
			bucket.weekdays[weekdayLabels[ts.Weekday()]]++
		}
	}

	summaries := make([]presence.MonthlySummary, 0, len(byPerson))
	for key, bucket := range byPerson {
		summaries = append(summaries, presence.MonthlySummary{
			PersonName:          key,
			DistinctDaysPresent: len(bucket.days),
			WeekdayHistogram:    bucket.weekdays,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].DistinctDaysPresent > summaries[j].DistinctDaysPresent
	})

	return summaries
}
