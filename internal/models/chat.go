package models

import "time"

// Conversation groups the messages of one chat session. The assistant is
// stateless across turns; the id is created on the first message and
// supplied back by the caller for continuity.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn within a conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"` // "user" or "assistant"
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Recognized tool names for assistant tool calls.
const (
	ToolAddTask      = "add_task"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
	ToolUpdateTask   = "update_task"
	ToolListTasks    = "list_tasks"
)

// ToolCall records one task operation the assistant executed on behalf of a
// chat message. Name is always one of the Tool* constants.
type ToolCall struct {
	Name       string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
	Result     any            `json:"result,omitempty"`
}
