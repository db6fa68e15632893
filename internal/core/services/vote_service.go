package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type vote struct {
	repo ports.ChoiceRepository
}

func NewVote(repo ports.ChoiceRepository) ports.VoteExecutor {
	return &vote{
		repo: repo,
	}
}

// Execute records one vote and returns the choice as it was read before
// the increment.
func (uc *vote) Execute(ctx context.Context, choiceID int64) (*domain.Choice, error) {
	choice, err := uc.repo.GetByID(ctx, choiceID)
	if err != nil {
		return nil, err
	}

	affected, err := uc.repo.UpdateVotes(ctx, choiceID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// deleted between the read and the increment
		return nil, fmt.Errorf("choice %d: %w", choiceID, domain.ErrChoiceNotFound)
	}

	return choice, nil
}
