package ports

import (
	"context"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type ChoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Choice, error)
	GetAll(ctx context.Context) ([]*domain.Choice, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Choice, error)
	Create(ctx context.Context, choice domain.Choice) (*domain.Choice, error)
	// Update returns nil, nil when the update carries no id.
	Update(ctx context.Context, update domain.ChoiceUpdate) (*domain.Choice, error)
	Delete(ctx context.Context, id int64) error
	// UpdateVotes increments the counter in storage and returns the number
	// of affected rows, not the new total.
	UpdateVotes(ctx context.Context, id int64) (int64, error)
}

type CreateChoiceExecutor interface {
	Execute(ctx context.Context, choice domain.Choice) (*domain.Choice, error)
}

type VoteExecutor interface {
	Execute(ctx context.Context, choiceID int64) (*domain.Choice, error)
}

type ChoiceService interface {
	Get(ctx context.Context, id int64) (*domain.Choice, error)
	List(ctx context.Context) ([]*domain.Choice, error)
	Update(ctx context.Context, update domain.ChoiceUpdate) (*domain.Choice, error)
	Delete(ctx context.Context, id int64) error
}
