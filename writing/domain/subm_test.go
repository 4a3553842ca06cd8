package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("  \n\t "))
	assert.Equal(t, 3, CountWords("one two\tthree"))
	assert.Equal(t, 4, CountWords(" Hello,  world!\nIt's me. "))
}

func TestNewWritingSubm(t *testing.T) {
	s, err := NewWritingSubm("u1", "easy", "Travel", "Describe a trip", "I went to Riga")
	require.NoError(t, err)

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, 4, s.WordCount)
	assert.NotEmpty(t, s.UUID.String())
	assert.False(t, s.CreatedAt.IsZero())
	assert.Nil(t, s.EvaluationOrNil())

	_, err = NewWritingSubm("", "easy", "t", "p", "u")
	require.Error(t, err)
}

func TestEvaluationOrNil(t *testing.T) {
	s := WritingSubm{Evaluation: json.RawMessage(`{"score":7}`)}
	require.NotNil(t, s.EvaluationOrNil())
	assert.Equal(t, `{"score":7}`, *s.EvaluationOrNil())
}
