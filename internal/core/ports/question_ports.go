package ports

import (
	"context"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type QuestionRepository interface {
	Create(ctx context.Context, question domain.Question) (*domain.Question, error)
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.Question, error)
}

type CreateQuestionExecutor interface {
	Execute(ctx context.Context, question domain.Question) (*domain.Question, error)
}
