package domain

import "time"

// Task lifecycle statuses. A task is completed once a matching submission
// exists; otherwise it is available while inside the unlocked window and
// locked beyond it.
const (
	StatusAvailable  = "available"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusLocked     = "locked"
)

// Display categories derived from task type and day index.
const (
	CategoryOrientation     = "Orientation"
	CategoryGettingStarted  = "Getting Started"
	CategoryBuildingNetwork = "Building Network"
	CategoryAdvancedTasks   = "Advanced Tasks"
	CategoryGeneral         = "General"
)

// Task represents one assignable unit of work in the program catalog.
// Tasks are rebuilt wholesale on every normalization pass and never mutated
// in place.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Points        int        `json:"points"`
	Deadline      string     `json:"deadline"`
	Status        string     `json:"status"`
	Category      string     `json:"category"`
	Day           int        `json:"day"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	EstimatedTime string     `json:"estimated_time,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Completion represents one submitted and accepted unit of work. Task title
// and description are denormalized at construction time for display.
//
// CompletedAt falls back to SubmittedAt when the server omits a completion
// date, so CompletedAt >= SubmittedAt is an approximation rather than a
// guarantee. Duplicate completions for one task id are kept as-is when the
// upstream data contains them.
type Completion struct {
	ID              string    `json:"id"`
	TaskID          string    `json:"task_id"`
	TaskTitle       string    `json:"task_title"`
	TaskDescription string    `json:"task_description"`
	Day             int       `json:"day"`
	Category        string    `json:"category"`
	Points          int       `json:"points"`
	PeopleConnected int       `json:"people_connected"`
	SubmissionText  string    `json:"submission_text"`
	ImageURL        string    `json:"image_url,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
	CompletedAt     time.Time `json:"completed_at"`
	Status          string    `json:"status"`
	EstimatedTime   string    `json:"estimated_time,omitempty"`
}

// LeaderboardEntry is an upstream ranking record served as-is to dashboard
// consumers.
type LeaderboardEntry struct {
	Name           string `json:"name"`
	College        string `json:"college"`
	TotalPoints    int    `json:"total_points"`
	TotalReferrals int    `json:"total_referrals"`
	Rank           int    `json:"rank"`
}
