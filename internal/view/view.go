// Package view derives filtered subsets of cached data. It is purely
// derivative: no network access, no cache mutation, deterministic for a given
// snapshot and filter.
package view

import (
	"time"

	"github.com/campuskit/analytics/domain"
	"github.com/campuskit/analytics/internal/stats"
)

// DateRange bounds completion timestamps inclusively on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter is the ad hoc criteria a consumer applies to a cache snapshot. An
// empty or "all" Status disables task filtering; a nil DateRange disables
// date filtering.
type Filter struct {
	Status    string
	DateRange *DateRange
}

// View is the derived triple served to filtered consumers.
type View struct {
	Tasks       []domain.Task       `json:"tasks"`
	Completions []domain.Completion `json:"completions"`
	Stats       domain.Stats        `json:"stats"`
}

// Apply filters a cache snapshot and recomputes stats over the result.
//
// Completions only exist for completed work, so any concrete status other
// than "completed" yields an empty completion list. Tasks are never
// date-filtered; they have no completion date until completed.
//
// MonthlyProgress is the one field carried over unfiltered from the base
// stats: downstream charts rely on the historical timeline staying stable
// across filter changes.
func Apply(filter Filter, tasks []domain.Task, completions []domain.Completion, base domain.Stats) View {
	filteredTasks := tasks
	filteredCompletions := completions

	if filter.Status != "" && filter.Status != "all" {
		filteredTasks = make([]domain.Task, 0, len(tasks))
		for _, task := range tasks {
			if task.Status == filter.Status {
				filteredTasks = append(filteredTasks, task)
			}
		}
		if filter.Status != domain.StatusCompleted {
			filteredCompletions = []domain.Completion{}
		}
	}

	if filter.DateRange != nil {
		kept := make([]domain.Completion, 0, len(filteredCompletions))
		for _, comp := range filteredCompletions {
			if comp.CompletedAt.Before(filter.DateRange.Start) {
				continue
			}
			if comp.CompletedAt.After(filter.DateRange.End) {
				continue
			}
			kept = append(kept, comp)
		}
		filteredCompletions = kept
	}

	derived := stats.Compute(filteredTasks, filteredCompletions)
	derived.MonthlyProgress = base.MonthlyProgress

	return View{
		Tasks:       filteredTasks,
		Completions: filteredCompletions,
		Stats:       derived,
	}
}
