package sqlite

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
	// stored as text, a single zone keeps lexical and time order aligned
	pubDate = pubDate.UTC().Truncate(time.Microsecond)

	created := domain.Question{QuestionText: question.QuestionText, PubDate: pubDate}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO questions (question_text, pub_date) VALUES (?, ?) RETURNING id`,
		created.QuestionText, created.PubDate,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	return &created, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRowContext(ctx,
		`SELECT id, question_text, pub_date FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.QuestionText, &q.PubDate)
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

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question_text, pub_date FROM questions ORDER BY pub_date DESC, id DESC LIMIT ?`, limit,
	)
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
