package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// WritingSubm is a user's answer to a writing prompt.
type WritingSubm struct {
	UUID       uuid.UUID
	UserID     string
	CreatedAt  time.Time
	Difficulty string
	Topic      string
	PromptText string
	UserText   string
	WordCount  int

	// Evaluation is produced by the evaluation subsystem and kept as-is.
	// Nil when the submission has not been evaluated.
	Evaluation json.RawMessage
}

func NewWritingSubm(userID, difficulty, topic, promptText, userText string) (WritingSubm, error) {
	if userID == "" {
		return WritingSubm{}, errors.New("user id is required")
	}
	return WritingSubm{
		UUID:       uuid.New(),
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
		Difficulty: difficulty,
		Topic:      topic,
		PromptText: promptText,
		UserText:   userText,
		WordCount:  CountWords(userText),
	}, nil
}

func CountWords(text string) int {
	return len(strings.FieldsFunc(text, unicode.IsSpace))
}

// EvaluationOrNil returns the evaluation as a string for storage,
// or nil when there is none.
func (s WritingSubm) EvaluationOrNil() *string {
	if len(s.Evaluation) == 0 {
		return nil
	}
	e := string(s.Evaluation)
	return &e
}
