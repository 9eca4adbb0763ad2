package upstream

// RawTask is a server-shaped task catalog record, passed through untouched to
// the normalizer.
type RawTask struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Day          int    `json:"day"`
	TaskType     string `json:"task_type"`
	PointsReward int    `json:"points_reward"`
}

// RawSubmission is a server-shaped submission record. Dates stay as strings
// here; the upstream emits ISO timestamps with and without offsets, and
// parsing is the normalizer's concern.
type RawSubmission struct {
	ID              string `json:"id"`
	TaskID          string `json:"task_id"`
	Day             int    `json:"day"`
	StatusText      string `json:"status_text"`
	PeopleConnected int    `json:"people_connected"`
	PointsEarned    int    `json:"points_earned"`
	ProofImage      string `json:"proof_image,omitempty"`
	SubmissionDate  string `json:"submission_date"`
	CompletionDate  string `json:"completion_date,omitempty"`
}
