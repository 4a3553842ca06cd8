package http

import "encoding/json"

// SubmissionView is the public shape of a submission. The owner id is
// deliberately absent.
type SubmissionView struct {
	ID         string          `json:"id"`
	CreatedAt  string          `json:"createdAt"`
	Difficulty string          `json:"difficulty"`
	Topic      string          `json:"topic"`
	PromptText string          `json:"promptText"`
	UserText   string          `json:"userText"`
	WordCount  int             `json:"wordCount"`
	Evaluation json.RawMessage `json:"evaluation"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionView `json:"submissions"`
}
