// Package repotest holds the behavioural tests every repository backend
// must pass.
package repotest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type Repositories struct {
	Questions ports.QuestionRepository
	Choices   ports.ChoiceRepository
}

// Factory returns repositories backed by empty storage.
type Factory func(t *testing.T) Repositories

func Run(t *testing.T, newRepos Factory) {
	t.Run("QuestionCreateAssignsIDAndPubDate", func(t *testing.T) { testQuestionCreateDefaults(t, newRepos(t)) })
	t.Run("QuestionRoundTrip", func(t *testing.T) { testQuestionRoundTrip(t, newRepos(t)) })
	t.Run("QuestionCreateInvalid", func(t *testing.T) { testQuestionCreateInvalid(t, newRepos(t)) })
	t.Run("QuestionNotFound", func(t *testing.T) { testQuestionNotFound(t, newRepos(t)) })
	t.Run("QuestionGetRecent", func(t *testing.T) { testQuestionGetRecent(t, newRepos(t)) })
	t.Run("ChoiceCreate", func(t *testing.T) { testChoiceCreate(t, newRepos(t)) })
	t.Run("ChoiceCreateInvalid", func(t *testing.T) { testChoiceCreateInvalid(t, newRepos(t)) })
	t.Run("ChoiceNotFound", func(t *testing.T) { testChoiceNotFound(t, newRepos(t)) })
	t.Run("ChoiceList", func(t *testing.T) { testChoiceList(t, newRepos(t)) })
	t.Run("ChoiceUpdate", func(t *testing.T) { testChoiceUpdate(t, newRepos(t)) })
	t.Run("ChoiceDelete", func(t *testing.T) { testChoiceDelete(t, newRepos(t)) })
	t.Run("ChoiceUpdateVotes", func(t *testing.T) { testChoiceUpdateVotes(t, newRepos(t)) })
	t.Run("ChoiceUpdateVotesConcurrent", func(t *testing.T) { testChoiceUpdateVotesConcurrent(t, newRepos(t)) })
	t.Run("FavoriteColorScenario", func(t *testing.T) { testFavoriteColorScenario(t, newRepos(t)) })
}

func createQuestion(t *testing.T, repos Repositories, text string) *domain.Question {
	t.Helper()
	q, err := repos.Questions.Create(context.Background(), domain.Question{QuestionText: text})
	require.NoError(t, err)
	return q
}

func createChoice(t *testing.T, repos Repositories, questionID int64, text string) *domain.Choice {
	t.Helper()
	c, err := repos.Choices.Create(context.Background(), domain.Choice{QuestionID: questionID, Text: text})
	require.NoError(t, err)
	return c
}

func testQuestionCreateDefaults(t *testing.T, repos Repositories) {
	before := time.Now()

	q, err := repos.Questions.Create(context.Background(), domain.Question{QuestionText: "Favorite color?"})
	require.NoError(t, err)

	assert.Positive(t, q.ID)
	assert.Equal(t, "Favorite color?", q.QuestionText)
	assert.False(t, q.PubDate.Before(before.Add(-time.Second)), "pub date %v predates the call", q.PubDate)
	assert.False(t, q.PubDate.After(time.Now().Add(time.Second)))
}

func testQuestionRoundTrip(t *testing.T, repos Repositories) {
	ctx := context.Background()
	pub := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	created, err := repos.Questions.Create(ctx, domain.Question{QuestionText: "¿Cuál es tu color favorito?", PubDate: pub})
	require.NoError(t, err)
	assert.True(t, pub.Equal(created.PubDate))

	fetched, err := repos.Questions.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.QuestionText, fetched.QuestionText)
	assert.True(t, created.PubDate.Equal(fetched.PubDate), "want %v, got %v", created.PubDate, fetched.PubDate)
}

func testQuestionCreateInvalid(t *testing.T, repos Repositories) {
	ctx := context.Background()

	_, err := repos.Questions.Create(ctx, domain.Question{QuestionText: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)

	_, err = repos.Questions.Create(ctx, domain.Question{QuestionText: strings.Repeat("a", domain.MaxQuestionTextLength+1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)

	recent, err := repos.Questions.GetRecent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func testQuestionNotFound(t *testing.T, repos Repositories) {
	q, err := repos.Questions.GetByID(context.Background(), 999)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func testQuestionGetRecent(t *testing.T, repos Repositories) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// inserted out of order so the result order comes from pub_date
	for _, hour := range []int{3, 0, 6, 1, 5, 2, 4} {
		_, err := repos.Questions.Create(ctx, domain.Question{
			QuestionText: "question",
			PubDate:      base.Add(time.Duration(hour) * time.Hour),
		})
		require.NoError(t, err)
	}

	recent, err := repos.Questions.GetRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for i, q := range recent {
		want := base.Add(time.Duration(6-i) * time.Hour)
		assert.True(t, want.Equal(q.PubDate), "position %d: want %v, got %v", i, want, q.PubDate)
	}

	all, err := repos.Questions.GetRecent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	for _, limit := range []int{0, -1} {
		none, err := repos.Questions.GetRecent(ctx, limit)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	}
}

func testChoiceCreate(t *testing.T, repos Repositories) {
	ctx := context.Background()
	q := createQuestion(t, repos, "Favorite color?")

	c, err := repos.Choices.Create(ctx, domain.Choice{QuestionID: q.ID, Text: "Rojo"})
	require.NoError(t, err)
	assert.Positive(t, c.ID)
	assert.Equal(t, q.ID, c.QuestionID)
	assert.Equal(t, "Rojo", c.Text)
	assert.Equal(t, 0, c.Votes)

	fetched, err := repos.Choices.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, fetched)

	withVotes, err := repos.Choices.Create(ctx, domain.Choice{QuestionID: q.ID, Text: "azul", Votes: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, withVotes.Votes)
}

func testChoiceCreateInvalid(t *testing.T, repos Repositories) {
	ctx := context.Background()

	_, err := repos.Choices.Create(ctx, domain.Choice{Text: "orphan"})
	assert.ErrorIs(t, err, domain.ErrChoiceData)

	_, err = repos.Choices.Create(ctx, domain.Choice{QuestionID: 999, Text: "orphan"})
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	q := createQuestion(t, repos, "Long answers?")
	tooLong := strings.Repeat("a", domain.MaxChoiceTextLength+1)
	_, err = repos.Choices.Create(ctx, domain.Choice{QuestionID: q.ID, Text: tooLong})
	assert.ErrorIs(t, err, domain.ErrChoiceData)

	atLimit := strings.Repeat("a", domain.MaxChoiceTextLength)
	c, err := repos.Choices.Create(ctx, domain.Choice{QuestionID: q.ID, Text: atLimit})
	require.NoError(t, err)

	_, err = repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: c.ID, Text: &tooLong})
	assert.ErrorIs(t, err, domain.ErrChoiceData)

	require.NoError(t, repos.Choices.Delete(ctx, c.ID))

	all, err := repos.Choices.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testChoiceNotFound(t *testing.T, repos Repositories) {
	c, err := repos.Choices.GetByID(context.Background(), 999)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrChoiceNotFound)
}

func testChoiceList(t *testing.T, repos Repositories) {
	ctx := context.Background()
	first := createQuestion(t, repos, "Pregunta 1")
	second := createQuestion(t, repos, "Pregunta 2")
	a := createChoice(t, repos, first.ID, "Opción 1")
	b := createChoice(t, repos, first.ID, "Opción 2")
	c := createChoice(t, repos, second.ID, "Opción 1b")

	all, err := repos.Choices.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Choice{a, b, c}, all)

	byQuestion, err := repos.Choices.ListByQuestion(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Choice{a, b}, byQuestion)

	none, err := repos.Choices.ListByQuestion(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testChoiceUpdate(t *testing.T, repos Repositories) {
	ctx := context.Background()
	q := createQuestion(t, repos, "se va a hacer o no se va a hacer")
	c := createChoice(t, repos, q.ID, "no")

	text := "sí, lo vamos a hacer"
	updated, err := repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: c.ID, Text: &text})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, q.ID, updated.QuestionID)
	assert.Equal(t, text, updated.Text)
	assert.Equal(t, 0, updated.Votes)

	votes := 7
	updated, err = repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: c.ID, Votes: &votes})
	require.NoError(t, err)
	assert.Equal(t, text, updated.Text)
	assert.Equal(t, 7, updated.Votes)

	zero := 0
	updated, err = repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: c.ID, Votes: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Votes)

	unchanged, err := repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	noID, err := repos.Choices.Update(ctx, domain.ChoiceUpdate{Text: &text})
	assert.NoError(t, err)
	assert.Nil(t, noID)

	_, err = repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: 999, Text: &text})
	assert.ErrorIs(t, err, domain.ErrChoiceNotFound)

	negative := -1
	_, err = repos.Choices.Update(ctx, domain.ChoiceUpdate{ID: c.ID, Votes: &negative})
	assert.ErrorIs(t, err, domain.ErrChoiceData)
}

func testChoiceDelete(t *testing.T, repos Repositories) {
	ctx := context.Background()
	q := createQuestion(t, repos, "¿Cuál es tu color favorito?")
	c := createChoice(t, repos, q.ID, "azul")

	require.NoError(t, repos.Choices.Delete(ctx, c.ID))
	_, err := repos.Choices.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrChoiceNotFound)

	assert.NoError(t, repos.Choices.Delete(ctx, c.ID))
	assert.NoError(t, repos.Choices.Delete(ctx, 999))
}

func testChoiceUpdateVotes(t *testing.T, repos Repositories) {
	ctx := context.Background()
	q := createQuestion(t, repos, "¿Cuál es tu color favorito?")
	c := createChoice(t, repos, q.ID, "Rojo")

	for i := 0; i < 3; i++ {
		affected, err := repos.Choices.UpdateVotes(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	}

	fetched, err := repos.Choices.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.Votes)

	affected, err := repos.Choices.UpdateVotes(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func testChoiceUpdateVotesConcurrent(t *testing.T, repos Repositories) {
	ctx := context.Background()
	q := createQuestion(t, repos, "Favorite color?")
	c, err := repos.Choices.Create(ctx, domain.Choice{QuestionID: q.ID, Text: "Red", Votes: 5})
	require.NoError(t, err)

	const voters = 20
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repos.Choices.UpdateVotes(ctx, c.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	fetched, err := repos.Choices.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5+voters, fetched.Votes)
}

func testFavoriteColorScenario(t *testing.T, repos Repositories) {
	ctx := context.Background()
	q := createQuestion(t, repos, "Favorite color?")
	red := createChoice(t, repos, q.ID, "Red")
	blue := createChoice(t, repos, q.ID, "Blue")

	for i := 0; i < 3; i++ {
		_, err := repos.Choices.UpdateVotes(ctx, red.ID)
		require.NoError(t, err)
	}

	gotRed, err := repos.Choices.GetByID(ctx, red.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, gotRed.Votes)

	gotBlue, err := repos.Choices.GetByID(ctx, blue.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotBlue.Votes)
}
