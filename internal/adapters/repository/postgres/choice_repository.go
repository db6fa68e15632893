package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type choiceRepository struct {
	db *sql.DB
}

func NewChoiceRepository(db *sql.DB) ports.ChoiceRepository {
	return &choiceRepository{
		db: db,
	}
}

func (r *choiceRepository) GetByID(ctx context.Context, id int64) (*domain.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, votes
		FROM choices
		WHERE id = $1
	`

	var c domain.Choice
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("choice %d: %w", id, domain.ErrChoiceNotFound)
		}
		return nil, fmt.Errorf("failed to get choice: %w", err)
	}

	return &c, nil
}

func (r *choiceRepository) GetAll(ctx context.Context) ([]*domain.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, votes
		FROM choices
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all choices: %w", err)
	}
	defer rows.Close()

	return scanChoices(rows)
}

func (r *choiceRepository) ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, votes
		FROM choices
		WHERE question_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list choices: %w", err)
	}
	defer rows.Close()

	return scanChoices(rows)
}

func (r *choiceRepository) Create(ctx context.Context, choice domain.Choice) (*domain.Choice, error) {
	if choice.QuestionID == 0 {
		return nil, fmt.Errorf("%w: question id is required", domain.ErrChoiceData)
	}
	if err := choice.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO choices (question_id, choice_text, votes)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	created := domain.Choice{QuestionID: choice.QuestionID, Text: choice.Text, Votes: choice.Votes}
	err := r.db.QueryRowContext(ctx, query, created.QuestionID, created.Text, created.Votes).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("question %d: %w", choice.QuestionID, domain.ErrQuestionNotFound)
		}
		return nil, fmt.Errorf("failed to insert choice: %w", err)
	}

	return &created, nil
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

	var (
		sets []string
		args []any
	)
	if update.Text != nil {
		args = append(args, *update.Text)
		sets = append(sets, fmt.Sprintf("choice_text = $%d", len(args)))
	}
	if update.Votes != nil {
		args = append(args, *update.Votes)
		sets = append(sets, fmt.Sprintf("votes = $%d", len(args)))
	}
	args = append(args, update.ID)

	query := fmt.Sprintf(`
		UPDATE choices SET %s
		WHERE id = $%d
		RETURNING id, question_id, choice_text, votes
	`, strings.Join(sets, ", "), len(args))

	var c domain.Choice
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("choice %d: %w", update.ID, domain.ErrChoiceNotFound)
		}
		return nil, fmt.Errorf("failed to update choice: %w", err)
	}

	return &c, nil
}

func (r *choiceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM choices WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete choice: %w", err)
	}
	return nil
}

func (r *choiceRepository) UpdateVotes(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE choices SET votes = votes + 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update votes: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func scanChoices(rows *sql.Rows) ([]*domain.Choice, error) {
	choices := []*domain.Choice{}
	for rows.Next() {
		var c domain.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating choices: %w", err)
	}
	return choices, nil
}
