package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

const DefaultRecentLimit = 5

var defaultChoices = []string{"yes", "no"}

type pollService struct {
	questions      ports.QuestionRepository
	choices        ports.ChoiceRepository
	createQuestion ports.CreateQuestionExecutor
	createChoice   ports.CreateChoiceExecutor
	vote           ports.VoteExecutor
}

func NewPollService(
	questions ports.QuestionRepository,
	choices ports.ChoiceRepository,
	createQuestion ports.CreateQuestionExecutor,
	createChoice ports.CreateChoiceExecutor,
	vote ports.VoteExecutor,
) ports.PollService {
	return &pollService{
		questions:      questions,
		choices:        choices,
		createQuestion: createQuestion,
		createChoice:   createChoice,
		vote:           vote,
	}
}

func (s *pollService) CreateQuestion(ctx context.Context, input ports.CreateQuestionInput) (*domain.QuestionDetail, error) {
	q, err := domain.NewQuestion(input.QuestionText, input.PubDate)
	if err != nil {
		return nil, err
	}

	texts := input.Choices
	if texts == nil {
		texts = defaultChoices
	}

	var choices []domain.Choice
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		// checked before the question is stored
		if err := domain.ValidateChoiceText(text); err != nil {
			return nil, err
		}
		// question id is filled in once the question is stored
		choices = append(choices, domain.Choice{Text: text})
	}

	created, err := s.createQuestion.Execute(ctx, q)
	if err != nil {
		return nil, err
	}

	detail := &domain.QuestionDetail{Question: *created, Choices: []*domain.Choice{}}
	for _, c := range choices {
		c.QuestionID = created.ID
		choice, err := s.createChoice.Execute(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to create choice %q: %w", c.Text, err)
		}
		detail.Choices = append(detail.Choices, choice)
	}

	return detail, nil
}

func (s *pollService) GetQuestion(ctx context.Context, id int64) (*domain.QuestionDetail, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	choices, err := s.choices.ListByQuestion(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	return &domain.QuestionDetail{Question: *q, Choices: choices}, nil
}

func (s *pollService) RecentQuestions(ctx context.Context, limit int) ([]*domain.Question, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	return s.questions.GetRecent(ctx, limit)
}

func (s *pollService) AddChoice(ctx context.Context, questionID int64, text string) (*domain.Choice, error) {
	c, err := domain.NewChoice(questionID, text, 0)
	if err != nil {
		return nil, err
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	return s.createChoice.Execute(ctx, c)
}

// Vote checks that the choice belongs to the question, then hands off to
// the vote use case, which reads the choice again to return its own
// pre-increment snapshot.
func (s *pollService) Vote(ctx context.Context, questionID, choiceID int64) (*domain.Choice, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	choice, err := s.choices.GetByID(ctx, choiceID)
	if err != nil {
		return nil, err
	}
	if choice.QuestionID != questionID {
		return nil, domain.ErrInvalidChoice
	}

	return s.vote.Execute(ctx, choiceID)
}

func (s *pollService) Results(ctx context.Context, questionID int64) (*domain.QuestionResults, error) {
	detail, err := s.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return domain.NewQuestionResults(detail.Question, detail.Choices), nil
}
