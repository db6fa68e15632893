package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

func (app *TestApp) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := app.Server.Client().Post(app.Server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (app *TestApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := app.Server.Client().Get(app.Server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPollLifecycle(t *testing.T) {
	backends := map[string]backend{
		"database/sql": sqlBackend,
		"gorm":         gormBackend,
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			app := setupTestApp(t, open)

			resp := app.post(t, "/api/questions", map[string]any{
				"question_text": "Favorite color?",
				"choices":       []string{"red", "blue"},
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var detail domain.QuestionDetail
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
			require.Len(t, detail.Choices, 2)
			red, blue := detail.Choices[0], detail.Choices[1]

			votePath := fmt.Sprintf("/api/questions/%d/vote", detail.ID)
			body, err := json.Marshal(map[string]any{"choice_id": red.ID})
			require.NoError(t, err)

			const voters = 10
			statuses := make([]int, voters)
			errs := make([]error, voters)
			var wg sync.WaitGroup
			for i := 0; i < voters; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					r, err := app.Server.Client().Post(app.Server.URL+votePath, "application/json", bytes.NewReader(body))
					if err != nil {
						errs[i] = err
						return
					}
					r.Body.Close()
					statuses[i] = r.StatusCode
				}(i)
			}
			wg.Wait()
			for i := 0; i < voters; i++ {
				require.NoError(t, errs[i])
				assert.Equal(t, http.StatusOK, statuses[i], "vote %d", i)
			}
			require.Equal(t, http.StatusOK, app.post(t, votePath, map[string]any{"choice_id": blue.ID}).StatusCode)

			var votes int
			require.NoError(t, app.DB.QueryRow(`SELECT votes FROM choices WHERE id = $1`, red.ID).Scan(&votes))
			assert.Equal(t, voters, votes)

			resp = app.get(t, fmt.Sprintf("/api/questions/%d/results", detail.ID))
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var results domain.QuestionResults
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
			assert.Equal(t, 11, results.TotalVotes)
			assert.Equal(t, "Favorite color?", results.Question.QuestionText)

			other := app.post(t, "/api/questions", map[string]any{"question_text": "Other?"})
			require.Equal(t, http.StatusCreated, other.StatusCode)
			var otherDetail domain.QuestionDetail
			require.NoError(t, json.NewDecoder(other.Body).Decode(&otherDetail))

			foreign := app.post(t, votePath, map[string]any{"choice_id": otherDetail.Choices[0].ID})
			assert.Equal(t, http.StatusBadRequest, foreign.StatusCode)

			missing := app.post(t, "/api/questions/9999/choices", map[string]any{"choice_text": "x"})
			assert.Equal(t, http.StatusNotFound, missing.StatusCode)
		})
	}
}
