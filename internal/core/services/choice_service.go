package services

import (
	"context"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type createChoice struct {
	repo ports.ChoiceRepository
}

func NewCreateChoice(repo ports.ChoiceRepository) ports.CreateChoiceExecutor {
	return &createChoice{
		repo: repo,
	}
}

func (uc *createChoice) Execute(ctx context.Context, choice domain.Choice) (*domain.Choice, error) {
	return uc.repo.Create(ctx, choice)
}

type choiceService struct {
	repo ports.ChoiceRepository
}

func NewChoiceService(repo ports.ChoiceRepository) ports.ChoiceService {
	return &choiceService{
		repo: repo,
	}
}

func (s *choiceService) Get(ctx context.Context, id int64) (*domain.Choice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *choiceService) List(ctx context.Context) ([]*domain.Choice, error) {
	return s.repo.GetAll(ctx)
}

func (s *choiceService) Update(ctx context.Context, update domain.ChoiceUpdate) (*domain.Choice, error) {
	return s.repo.Update(ctx, update)
}

func (s *choiceService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
