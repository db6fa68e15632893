package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type CreateQuestionInput struct {
	QuestionText string
	PubDate      time.Time
	// Nil seeds the default yes/no choices, an empty slice seeds none.
	Choices []string
}

type PollService interface {
	CreateQuestion(ctx context.Context, input CreateQuestionInput) (*domain.QuestionDetail, error)
	GetQuestion(ctx context.Context, id int64) (*domain.QuestionDetail, error)
	RecentQuestions(ctx context.Context, limit int) ([]*domain.Question, error)
	AddChoice(ctx context.Context, questionID int64, text string) (*domain.Choice, error)
	Vote(ctx context.Context, questionID, choiceID int64) (*domain.Choice, error)
	Results(ctx context.Context, questionID int64) (*domain.QuestionResults, error)
}
