package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date"`
	Choices      []string   `json:"choices"`
}

type addChoiceRequest struct {
	Text string `json:"choice_text"`
}

type voteRequest struct {
	ChoiceID int64 `json:"choice_id"`
}

func (h *PollHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	questions, err := h.service.RecentQuestions(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *PollHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateQuestionInput{
		QuestionText: req.QuestionText,
		Choices:      req.Choices,
	}
	if req.PubDate != nil {
		input.PubDate = *req.PubDate
	}

	detail, err := h.service.CreateQuestion(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, detail)
}

func (h *PollHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.service.GetQuestion(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.service.Results(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *PollHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req addChoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	choice, err := h.service.AddChoice(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, choice)
}

// Vote responds with the choice as it was before the vote was counted.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil || req.ChoiceID <= 0 {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	choice, err := h.service.Vote(r.Context(), id, req.ChoiceID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, choice)
}
