package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

func (r *questionRepository) Create(ctx context.Context, question domain.Question) (*domain.Question, error) {
	if err := question.Validate(); err != nil {
		return nil, err
	}

	pubDate := question.PubDate
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	m := questionModel{
		QuestionText: question.QuestionText,
		PubDate:      pubDate.UTC().Truncate(time.Microsecond),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	return m.toDomain(), nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	var m questionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, domain.ErrQuestionNotFound)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return m.toDomain(), nil
}

func (r *questionRepository) GetRecent(ctx context.Context, limit int) ([]*domain.Question, error) {
	questions := []*domain.Question{}
	if limit <= 0 {
		return questions, nil
	}

	var models []questionModel
	err := r.db.WithContext(ctx).
		Order("pub_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent questions: %w", err)
	}

	for i := range models {
		questions = append(questions, models[i].toDomain())
	}
	return questions, nil
}

func (m questionModel) toDomain() *domain.Question {
	return &domain.Question{
		ID:           m.ID,
		QuestionText: m.QuestionText,
		PubDate:      m.PubDate.UTC(),
	}
}
