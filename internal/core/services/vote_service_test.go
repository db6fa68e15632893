package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

func TestVote_ReturnsPreIncrementSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChoiceRepo()
	c, err := repo.Create(ctx, domain.Choice{QuestionID: 1, Text: "Red", Votes: 4})
	require.NoError(t, err)
	repo.calls = nil

	snapshot, err := NewVote(repo).Execute(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, snapshot.Votes)
	assert.Equal(t, []string{"GetByID", "UpdateVotes"}, repo.calls)

	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Votes)
}

func TestVote_MultipleTimes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChoiceRepo()
	c, err := repo.Create(ctx, domain.Choice{QuestionID: 1, Text: "Red"})
	require.NoError(t, err)

	uc := NewVote(repo)
	for i := 0; i < 3; i++ {
		_, err := uc.Execute(ctx, c.ID)
		require.NoError(t, err)
	}

	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Votes)
}

func TestVote_NotFound(t *testing.T) {
	repo := newFakeChoiceRepo()

	_, err := NewVote(repo).Execute(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrChoiceNotFound)
	assert.NotContains(t, repo.calls, "UpdateVotes")
}

func TestVote_DeletedBeforeIncrement(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChoiceRepo()
	c, err := repo.Create(ctx, domain.Choice{QuestionID: 1, Text: "Red"})
	require.NoError(t, err)
	repo.deleteOnVote = true

	_, err = NewVote(repo).Execute(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrChoiceNotFound)
}
