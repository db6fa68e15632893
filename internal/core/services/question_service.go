package services

import (
	"context"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type createQuestion struct {
	repo ports.QuestionRepository
}

func NewCreateQuestion(repo ports.QuestionRepository) ports.CreateQuestionExecutor {
	return &createQuestion{
		repo: repo,
	}
}

func (uc *createQuestion) Execute(ctx context.Context, question domain.Question) (*domain.Question, error) {
	return uc.repo.Create(ctx, question)
}
