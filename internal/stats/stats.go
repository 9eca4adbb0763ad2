// Package stats computes derived aggregates over completion collections. All
// functions are pure; results are rebuilt in full on every call, never
// patched incrementally.
package stats

import (
	"sort"
	"time"

	"github.com/campuskit/analytics/domain"
)

// recentLimit caps the recency-ordered completion slice.
const recentLimit = 5

// monthKeyLayout sorts lexically in chronological order; monthLabelLayout is
// the display form derived from it.
const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "January 2006"
)

// Compute aggregates a completion list into a Stats value. The task list only
// contributes its length; every completion lands in exactly one category
// bucket and one month bucket. The average uses floating-point division and
// is defined as 0 when there are no completions.
func Compute(tasks []domain.Task, completions []domain.Completion) domain.Stats {
	out := domain.EmptyStats()
	out.TotalTasks = len(tasks)
	out.CompletedTasks = len(completions)

	type monthBucket struct {
		tasks  int
		points int
	}
	months := map[string]monthBucket{}

	for _, comp := range completions {
		out.TotalPoints += comp.Points
		out.TotalPeopleConnected += comp.PeopleConnected
		out.CategoryBreakdown[comp.Category]++

		key := comp.CompletedAt.Format(monthKeyLayout)
		bucket := months[key]
		bucket.tasks++
		bucket.points += comp.Points
		months[key] = bucket
	}

	if out.CompletedTasks > 0 {
		out.AveragePointsPerTask = float64(out.TotalPoints) / float64(out.CompletedTasks)
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		bucket := months[key]
		out.MonthlyProgress = append(out.MonthlyProgress, domain.MonthlyProgress{
			Month:  monthLabel(key),
			Tasks:  bucket.tasks,
			Points: bucket.points,
		})
	}

	out.RecentCompletions = Recent(completions, recentLimit)
	return out
}

// Recent returns up to limit completions ordered most-recent-first by
// completion timestamp. The input slice is left untouched.
func Recent(completions []domain.Completion, limit int) []domain.Completion {
	sorted := make([]domain.Completion, len(completions))
	copy(sorted, completions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func monthLabel(key string) string {
	parsed, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return parsed.Format(monthLabelLayout)
}
