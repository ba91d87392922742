package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/dagaz/internal/assistant"
	"github.com/starford/dagaz/internal/taskservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(tasks *taskservice.Service, chat *assistant.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(tasks, chat)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Tasks CRUD. The fixed segments must be registered before the {id}
	// routes or chi would swallow them as ids.
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Post("/tasks/reorder", h.ReorderTasks)
	r.Get("/tasks/{id}", h.GetTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	r.Post("/tasks/{id}/toggle", h.ToggleTask)

	// Search.
	r.Get("/search", h.SearchTasks)

	// Chat assistant.
	r.Post("/chat", h.Chat)
	r.Get("/chat/{id}/messages", h.ChatHistory)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
