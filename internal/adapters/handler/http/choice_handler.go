package http

import (
	"net/http"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type ChoiceHandler struct {
	service ports.ChoiceService
}

func NewChoiceHandler(service ports.ChoiceService) *ChoiceHandler {
	return &ChoiceHandler{
		service: service,
	}
}

type updateChoiceRequest struct {
	Text  *string `json:"choice_text"`
	Votes *int    `json:"votes"`
}

func (h *ChoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	choices, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, choices)
}

func (h *ChoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	choice, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, choice)
}

func (h *ChoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateChoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	choice, err := h.service.Update(r.Context(), domain.ChoiceUpdate{
		ID:    id,
		Text:  req.Text,
		Votes: req.Votes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, choice)
}

func (h *ChoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
