package view

import (
	"testing"
	"time"

	"github.com/campuskit/analytics/domain"
	"github.com/campuskit/analytics/internal/stats"
)

func sampleData() ([]domain.Task, []domain.Completion) {
	tasks := []domain.Task{
		{ID: "t1", Status: domain.StatusCompleted, Category: domain.CategoryOrientation},
		{ID: "t2", Status: domain.StatusAvailable, Category: domain.CategoryGettingStarted},
		{ID: "t3", Status: domain.StatusLocked, Category: domain.CategoryGettingStarted},
	}
	completions := []domain.Completion{
		{ID: "c1", TaskID: "t1", Category: domain.CategoryOrientation, Points: 50,
			CompletedAt: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "c2", TaskID: "t1", Category: domain.CategoryOrientation, Points: 30,
			CompletedAt: time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)},
	}
	return tasks, completions
}

func TestApply_NoFilter(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	for _, status := range []string{"", "all"} {
		result := Apply(Filter{Status: status}, tasks, completions, base)
		if len(result.Tasks) != len(tasks) {
			t.Errorf("status %q: expected all tasks, got %d", status, len(result.Tasks))
		}
		if len(result.Completions) != len(completions) {
			t.Errorf("status %q: expected all completions, got %d", status, len(result.Completions))
		}
	}
}

func TestApply_StatusFiltersTasks(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	result := Apply(Filter{Status: domain.StatusCompleted}, tasks, completions, base)
	if len(result.Tasks) != 1 || result.Tasks[0].ID != "t1" {
		t.Fatalf("expected only the completed task, got %+v", result.Tasks)
	}
	if len(result.Completions) != 2 {
		t.Fatalf("completed filter should keep completions, got %d", len(result.Completions))
	}
}

func TestApply_NonCompletedStatusYieldsNoCompletions(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	for _, status := range []string{domain.StatusAvailable, domain.StatusInProgress, domain.StatusLocked} {
		result := Apply(Filter{Status: status}, tasks, completions, base)
		if len(result.Completions) != 0 {
			t.Errorf("status %q: expected empty completions, got %d", status, len(result.Completions))
		}
	}
}

func TestApply_DateRangeInclusive(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	dateRange := &DateRange{
		Start: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC), // == c1.CompletedAt
		End:   time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), // == c2.CompletedAt
	}
	result := Apply(Filter{DateRange: dateRange}, tasks, completions, base)

	if len(result.Completions) != 2 {
		t.Fatalf("expected boundary completions included, got %d", len(result.Completions))
	}
	if len(result.Tasks) != len(tasks) {
		t.Fatalf("tasks must not be date-filtered, got %d", len(result.Tasks))
	}
}

func TestApply_DateRangeExcludesOutside(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	dateRange := &DateRange{
		Start: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	result := Apply(Filter{DateRange: dateRange}, tasks, completions, base)

	if len(result.Completions) != 1 || result.Completions[0].ID != "c2" {
		t.Fatalf("expected only the August completion, got %+v", result.Completions)
	}
}

func TestApply_StatsRecomputedOverFilteredSet(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	dateRange := &DateRange{
		Start: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	result := Apply(Filter{DateRange: dateRange}, tasks, completions, base)

	if result.Stats.CompletedTasks != 1 || result.Stats.TotalPoints != 30 {
		t.Fatalf("expected stats over filtered completions, got %+v", result.Stats)
	}
}

func TestApply_MonthlyProgressCarriedUnfiltered(t *testing.T) {
	tasks, completions := sampleData()
	base := stats.Compute(tasks, completions)

	dateRange := &DateRange{
		Start: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	result := Apply(Filter{DateRange: dateRange}, tasks, completions, base)

	// the historical chart keeps the full timeline regardless of filtering
	if len(result.Stats.MonthlyProgress) != len(base.MonthlyProgress) {
		t.Fatalf("expected monthly progress carried over unfiltered, got %+v", result.Stats.MonthlyProgress)
	}
}
