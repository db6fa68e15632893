package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func NewHandler(pollHandler *PollHandler, choiceHandler *ChoiceHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome to polls"))
		})

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", pollHandler.ListQuestions)
			r.Post("/", pollHandler.CreateQuestion)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetQuestion)
				r.Get("/results", pollHandler.Results)
				r.Post("/choices", pollHandler.AddChoice)
				r.Post("/vote", pollHandler.Vote)
			})
		})

		r.Route("/choices", func(r chi.Router) {
			r.Get("/", choiceHandler.List)
			r.Get("/{id}", choiceHandler.Get)
			r.Patch("/{id}", choiceHandler.Update)
			r.Delete("/{id}", choiceHandler.Delete)
		})
	})

	return r
}

// requestID tags every request with a UUID, reusing the caller's
// X-Request-Id when present, and stores it where middleware.Logger looks.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
