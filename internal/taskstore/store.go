package taskstore

import (
	"github.com/starford/dagaz/internal/models"
)

// Store defines the persistence operations for tasks and conversations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type Store interface {
	CreateTask(t *models.Task) error
	GetTask(id string) (*models.Task, error)
	ListTasks(f TaskFilter) ([]models.Task, error)
	UpdateTask(t *models.Task) error
	DeleteTask(id string) error
	Reorder(ids []string) error
	Search(query string, limit int) ([]models.Task, error)

	CreateConversation(c *models.Conversation) error
	GetConversation(id string) (*models.Conversation, error)
	AppendMessage(m *models.Message) error
	ListMessages(conversationID string, limit int) ([]models.Message, error)

	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
