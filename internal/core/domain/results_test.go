package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionResults(t *testing.T) {
	q := Question{ID: 1, QuestionText: "Favorite color?"}
	choices := []*Choice{
		{ID: 1, QuestionID: 1, Text: "Red", Votes: 2},
		{ID: 2, QuestionID: 1, Text: "Blue", Votes: 1},
		{ID: 3, QuestionID: 1, Text: "Green", Votes: 0},
	}

	res := NewQuestionResults(q, choices)
	require.Len(t, res.Choices, 3)
	assert.Equal(t, 3, res.TotalVotes)
	assert.InDelta(t, 66.66, res.Choices[0].Percentage, 0.1)
	assert.InDelta(t, 33.33, res.Choices[1].Percentage, 0.1)
	assert.Equal(t, 0.0, res.Choices[2].Percentage)
}

func TestNewQuestionResults_NoVotes(t *testing.T) {
	res := NewQuestionResults(Question{ID: 1}, []*Choice{{ID: 1, Text: "Red"}})
	assert.Equal(t, 0, res.TotalVotes)
	assert.Equal(t, 0.0, res.Choices[0].Percentage)
}
