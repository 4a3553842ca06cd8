package http

import (
	"encoding/json"
	"time"

	"github.com/programme-lv/writing/writing/domain"
	"github.com/samber/lo"
)

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func MapSubmView(s domain.WritingSubm) SubmissionView {
	eval := s.Evaluation
	if len(eval) == 0 {
		eval = json.RawMessage("null")
	}
	return SubmissionView{
		ID:         s.UUID.String(),
		CreatedAt:  FormatCreatedAt(s.CreatedAt),
		Difficulty: s.Difficulty,
		Topic:      s.Topic,
		PromptText: s.PromptText,
		UserText:   s.UserText,
		WordCount:  s.WordCount,
		Evaluation: eval,
	}
}

// MapSubmViews never returns nil so an empty list encodes as [].
func MapSubmViews(subms []domain.WritingSubm) []SubmissionView {
	return lo.Map(subms, func(s domain.WritingSubm, _ int) SubmissionView {
		return MapSubmView(s)
	})
}
