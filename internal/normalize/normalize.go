// Package normalize converts raw server payloads into the stable Task and
// Completion shapes the rest of the service works with. It never rejects
// individual records: missing optional fields get documented defaults and
// submissions pointing at unknown tasks still produce completions.
package normalize

import (
	"fmt"
	"time"

	"github.com/campuskit/analytics/domain"
	"github.com/campuskit/analytics/upstream"
)

// lookahead is the number of not-yet-submitted tasks unlocked past the
// submitted count.
const lookahead = 3

// estimatedTime is the display label attached to every task and completion.
const estimatedTime = "2-3 hours"

// timeLayouts covers the timestamp formats the upstream is known to emit:
// RFC3339 with and without fractional seconds, and naive ISO timestamps
// without an offset.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Tasks builds the task list from the latest catalog and submission records.
// Status is a pure function of submission existence and catalog position:
// completed iff submitted, available while the 0-indexed position is inside
// min(submissionCount+lookahead, catalogSize), locked beyond it.
func Tasks(rawTasks []upstream.RawTask, rawSubs []upstream.RawSubmission) []domain.Task {
	submitted := make(map[string]struct{}, len(rawSubs))
	for _, sub := range rawSubs {
		submitted[sub.TaskID] = struct{}{}
	}

	unlocked := len(rawSubs) + lookahead
	if unlocked > len(rawTasks) {
		unlocked = len(rawTasks)
	}

	tasks := make([]domain.Task, 0, len(rawTasks))
	for i, raw := range rawTasks {
		status := domain.StatusLocked
		if _, ok := submitted[raw.ID]; ok {
			status = domain.StatusCompleted
		} else if i < unlocked {
			status = domain.StatusAvailable
		}

		tasks = append(tasks, domain.Task{
			ID:            raw.ID,
			Title:         raw.Title,
			Description:   raw.Description,
			Points:        raw.PointsReward,
			Deadline:      fmt.Sprintf("Day %d", raw.Day),
			Status:        status,
			Category:      category(&raw),
			Day:           raw.Day,
			EstimatedTime: estimatedTime,
		})
	}
	return tasks
}

// Completions builds completion records from submissions, denormalizing task
// title and description for display. Submissions referencing unknown task ids
// are kept with a generic title rather than dropped; duplicates for one task
// id are not collapsed.
func Completions(rawTasks []upstream.RawTask, rawSubs []upstream.RawSubmission) []domain.Completion {
	catalog := make(map[string]upstream.RawTask, len(rawTasks))
	for _, raw := range rawTasks {
		catalog[raw.ID] = raw
	}

	completions := make([]domain.Completion, 0, len(rawSubs))
	for _, sub := range rawSubs {
		title := "Task"
		description := ""
		cat := domain.CategoryGeneral
		if task, ok := catalog[sub.TaskID]; ok {
			title = task.Title
			description = task.Description
			cat = category(&task)
		}

		submittedAt, _ := parseTime(sub.SubmissionDate)
		completedAt := submittedAt
		if sub.CompletionDate != "" {
			if parsed, ok := parseTime(sub.CompletionDate); ok {
				completedAt = parsed
			}
		}

		imageURL := ""
		if sub.ProofImage != "" {
			imageURL = "data:image/jpeg;base64," + sub.ProofImage
		}

		completions = append(completions, domain.Completion{
			ID:              sub.ID,
			TaskID:          sub.TaskID,
			TaskTitle:       title,
			TaskDescription: description,
			Day:             sub.Day,
			Category:        cat,
			Points:          sub.PointsEarned,
			PeopleConnected: sub.PeopleConnected,
			SubmissionText:  sub.StatusText,
			ImageURL:        imageURL,
			SubmittedAt:     submittedAt,
			CompletedAt:     completedAt,
			Status:          domain.StatusCompleted,
			EstimatedTime:   estimatedTime,
		})
	}
	return completions
}

// category derives the display grouping from task type and day index. A nil
// task (submission without a catalog match) maps to General.
func category(task *upstream.RawTask) string {
	if task == nil {
		return domain.CategoryGeneral
	}
	if task.TaskType == "orientation" {
		return domain.CategoryOrientation
	}
	if task.Day <= 5 {
		return domain.CategoryGettingStarted
	}
	if task.Day <= 10 {
		return domain.CategoryBuildingNetwork
	}
	return domain.CategoryAdvancedTasks
}

// parseTime tries the known upstream layouts in order. Unparsable values
// normalize to the zero time rather than failing the record.
func parseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
