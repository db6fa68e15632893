package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type fakeQuestionRepo struct {
	mu        sync.Mutex
	nextID    int64
	questions map[int64]domain.Question
	err       error
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int64]domain.Question)}
}

func (r *fakeQuestionRepo) Create(ctx context.Context, q domain.Question) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	q.ID = r.nextID
	if q.PubDate.IsZero() {
		q.PubDate = time.Now()
	}
	r.questions[q.ID] = q
	return &q, nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", id, domain.ErrQuestionNotFound)
	}
	return &q, nil
}

func (r *fakeQuestionRepo) GetRecent(ctx context.Context, limit int) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Question{}
	if limit <= 0 {
		return out, nil
	}
	for _, q := range r.questions {
		q := q
		out = append(out, &q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeChoiceRepo struct {
	mu      sync.Mutex
	nextID  int64
	choices map[int64]domain.Choice
	calls   []string
	// deleteOnVote simulates a concurrent delete between read and increment.
	deleteOnVote bool
}

func newFakeChoiceRepo() *fakeChoiceRepo {
	return &fakeChoiceRepo{choices: make(map[int64]domain.Choice)}
}

func (r *fakeChoiceRepo) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *fakeChoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("GetByID")
	c, ok := r.choices[id]
	if !ok {
		return nil, fmt.Errorf("choice %d: %w", id, domain.ErrChoiceNotFound)
	}
	return &c, nil
}

func (r *fakeChoiceRepo) GetAll(ctx context.Context) ([]*domain.Choice, error) {
	return r.ListByQuestion(ctx, 0)
}

func (r *fakeChoiceRepo) ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Choice{}
	for _, c := range r.choices {
		if questionID != 0 && c.QuestionID != questionID {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChoiceRepo) Create(ctx context.Context, c domain.Choice) (*domain.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Create")
	if c.QuestionID == 0 {
		return nil, domain.ErrChoiceData
	}
	r.nextID++
	c.ID = r.nextID
	r.choices[c.ID] = c
	return &c, nil
}

func (r *fakeChoiceRepo) Update(ctx context.Context, u domain.ChoiceUpdate) (*domain.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Update")
	if u.ID == 0 {
		return nil, nil
	}
	c, ok := r.choices[u.ID]
	if !ok {
		return nil, domain.ErrChoiceNotFound
	}
	if u.Text != nil {
		c.Text = *u.Text
	}
	if u.Votes != nil {
		c.Votes = *u.Votes
	}
	r.choices[u.ID] = c
	return &c, nil
}

func (r *fakeChoiceRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Delete")
	delete(r.choices, id)
	return nil
}

func (r *fakeChoiceRepo) UpdateVotes(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UpdateVotes")
	if r.deleteOnVote {
		delete(r.choices, id)
	}
	c, ok := r.choices[id]
	if !ok {
		return 0, nil
	}
	c.Votes++
	r.choices[id] = c
	return 1, nil
}
