package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
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
	// postgres keeps microseconds
	pubDate = pubDate.UTC().Truncate(time.Microsecond)

	query := `
		INSERT INTO questions (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`
	created := domain.Question{QuestionText: question.QuestionText, PubDate: pubDate}
	if err := r.db.QueryRowContext(ctx, query, created.QuestionText, created.PubDate).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	return &created, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE id = $1
	`

	var q domain.Question
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.QuestionText, &q.PubDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("question %d: %w", id, domain.ErrQuestionNotFound)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	q.PubDate = q.PubDate.UTC()

	return &q, nil
}

func (r *questionRepository) GetRecent(ctx context.Context, limit int) ([]*domain.Question, error) {
	questions := []*domain.Question{}
	if limit <= 0 {
		return questions, nil
	}

	query := `
		SELECT id, question_text, pub_date
		FROM questions
		ORDER BY pub_date DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.PubDate = q.PubDate.UTC()
		questions = append(questions, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}
