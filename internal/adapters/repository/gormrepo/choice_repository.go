package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type choiceRepository struct {
	db *gorm.DB
}

func NewChoiceRepository(db *gorm.DB) ports.ChoiceRepository {
	return &choiceRepository{
		db: db,
	}
}

func (r *choiceRepository) GetByID(ctx context.Context, id int64) (*domain.Choice, error) {
	var m choiceModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("choice %d: %w", id, domain.ErrChoiceNotFound)
		}
		return nil, fmt.Errorf("failed to get choice: %w", err)
	}
	return m.toDomain(), nil
}

func (r *choiceRepository) GetAll(ctx context.Context) ([]*domain.Choice, error) {
	var models []choiceModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get all choices: %w", err)
	}
	return toDomainChoices(models), nil
}

func (r *choiceRepository) ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Choice, error) {
	var models []choiceModel
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list choices: %w", err)
	}
	return toDomainChoices(models), nil
}

func (r *choiceRepository) Create(ctx context.Context, choice domain.Choice) (*domain.Choice, error) {
	if choice.QuestionID == 0 {
		return nil, fmt.Errorf("%w: question id is required", domain.ErrChoiceData)
	}
	if err := choice.Validate(); err != nil {
		return nil, err
	}

	m := choiceModel{QuestionID: choice.QuestionID, Text: choice.Text, Votes: choice.Votes}
	// Select forces votes into the INSERT even when zero
	err := r.db.WithContext(ctx).
		Select("QuestionID", "Text", "Votes").
		Create(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("question %d: %w", choice.QuestionID, domain.ErrQuestionNotFound)
		}
		return nil, fmt.Errorf("failed to insert choice: %w", err)
	}

	return m.toDomain(), nil
}

func (r *choiceRepository) Update(ctx context.Context, update domain.ChoiceUpdate) (*domain.Choice, error) {
	if update.ID == 0 {
		return nil, nil
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.Empty() {
		return r.GetByID(ctx, update.ID)
	}

	fields := map[string]any{}
	if update.Text != nil {
		fields["choice_text"] = *update.Text
	}
	if update.Votes != nil {
		fields["votes"] = *update.Votes
	}

	res := r.db.WithContext(ctx).
		Model(&choiceModel{}).
		Where("id = ?", update.ID).
		Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update choice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("choice %d: %w", update.ID, domain.ErrChoiceNotFound)
	}

	return r.GetByID(ctx, update.ID)
}

func (r *choiceRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&choiceModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete choice: %w", err)
	}
	return nil
}

func (r *choiceRepository) UpdateVotes(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&choiceModel{}).
		Where("id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update votes: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (m choiceModel) toDomain() *domain.Choice {
	return &domain.Choice{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.Text,
		Votes:      m.Votes,
	}
}

func toDomainChoices(models []choiceModel) []*domain.Choice {
	choices := make([]*domain.Choice, 0, len(models))
	for i := range models {
		choices = append(choices, models[i].toDomain())
	}
	return choices
}
