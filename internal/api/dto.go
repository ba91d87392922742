package api

import (
	"github.com/starford/dagaz/internal/assistant"
	"github.com/starford/dagaz/internal/models"
)

// CreateTaskRequest is the request body for creating a task (aliased from the domain layer).
type CreateTaskRequest = models.TaskCreate

// UpdateTaskRequest is the request body for a partial task update (aliased from the domain layer).
type UpdateTaskRequest = models.TaskUpdate

// TaskListResponse wraps task listings.
type TaskListResponse struct {
	Tasks []models.Task `json:"tasks" validate:"required"`
	Total int           `json:"total" example:"7" validate:"required"`
}

// ReorderRequest carries the full task id list in the desired display order.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []models.Task `json:"results" validate:"required"`
}

// ChatRequest is the request body for a chat message.
type ChatRequest struct {
	Message        string `json:"message" example:"add buy milk tomorrow" validate:"required"`
	ConversationID string `json:"conversation_id,omitempty" example:"b2f1..."`
}

// ChatResponse is the assistant's reply (aliased from the domain layer).
type ChatResponse = assistant.Reply

// ChatHistoryResponse wraps a conversation transcript.
type ChatHistoryResponse struct {
	Messages []models.Message `json:"messages" validate:"required"`
}
