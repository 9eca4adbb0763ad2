package domain

// MonthlyProgress is one month's rollup of completed tasks and earned points.
// Month is a display label ("January 2006"); entries are ordered
// chronologically by the underlying year-month key.
type MonthlyProgress struct {
	Month  string `json:"month"`
	Tasks  int    `json:"tasks"`
	Points int    `json:"points"`
}

// Stats is a computed aggregate over a completion collection. It is
// recomputed in full on every cache refresh and on every filter application,
// never updated incrementally.
type Stats struct {
	TotalTasks           int               `json:"total_tasks"`
	CompletedTasks       int               `json:"completed_tasks"`
	TotalPoints          int               `json:"total_points"`
	TotalPeopleConnected int               `json:"total_people_connected"`
	AveragePointsPerTask float64           `json:"average_points_per_task"`
	CategoryBreakdown    map[string]int    `json:"category_breakdown"`
	MonthlyProgress      []MonthlyProgress `json:"monthly_progress"`
	RecentCompletions    []Completion      `json:"recent_completions"`
}

// EmptyStats returns a zeroed Stats with initialized collections, the value
// served when no data is cached and a refresh cannot complete.
func EmptyStats() Stats {
	return Stats{
		CategoryBreakdown: map[string]int{},
		MonthlyProgress:   []MonthlyProgress{},
		RecentCompletions: []Completion{},
	}
}
