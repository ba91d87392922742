// Package taskservice coordinates task persistence, concurrency checks, and
// change notification.
package taskservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/sse"
	"github.com/starford/dagaz/internal/taskstore"
)

// Service coordinates store operations and event broadcasting.
type Service struct {
	db     taskstore.Store
	broker *sse.Broker
	now    func() time.Time
}

// NewService creates a new task service. The broker may be nil, in which case
// no events are published.
func NewService(db taskstore.Store, broker *sse.Broker) *Service {
	return &Service{db: db, broker: broker, now: time.Now}
}

// Create validates and stores a new task at the end of the list.
func (s *Service) Create(_ context.Context, req models.TaskCreate) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}

	now := s.now().UTC()
	t := &models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Reminder:    req.Reminder,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.Checksum = contentChecksum(t)

	if err := s.db.CreateTask(t); err != nil {
		return nil, err
	}
	s.publish("created", t.ID)
	return t, nil
}

// Get returns one task by id.
func (s *Service) Get(_ context.Context, id string) (*models.Task, error) {
	return s.db.GetTask(id)
}

// List returns tasks in display order, optionally filtered.
func (s *Service) List(_ context.Context, f taskstore.TaskFilter) ([]models.Task, error) {
	tasks, err := s.db.ListTasks(f)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Update applies a partial update with optimistic concurrency. A non-empty
// ifMatch must equal the task's current checksum or the update is rejected.
func (s *Service) Update(_ context.Context, id string, req models.TaskUpdate, ifMatch string) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}

	t, err := s.db.GetTask(id)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && ifMatch != t.Checksum {
		return nil, apperr.ErrConflict
	}

	wasCompleted := t.IsCompleted
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.IsCompleted != nil {
		t.IsCompleted = *req.IsCompleted
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.Reminder != nil {
		t.Reminder = req.Reminder
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	t.UpdatedAt = s.now().UTC()
	t.Checksum = contentChecksum(t)

	if err := s.db.UpdateTask(t); err != nil {
		return nil, err
	}
	if !wasCompleted && t.IsCompleted {
		s.publish("completed", t.ID)
	} else {
		s.publish("updated", t.ID)
	}
	return t, nil
}

// Toggle flips a task's completion state.
func (s *Service) Toggle(_ context.Context, id string) (*models.Task, error) {
	t, err := s.db.GetTask(id)
	if err != nil {
		return nil, err
	}
	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = s.now().UTC()
	t.Checksum = contentChecksum(t)

	if err := s.db.UpdateTask(t); err != nil {
		return nil, err
	}
	if t.IsCompleted {
		s.publish("completed", t.ID)
	} else {
		s.publish("updated", t.ID)
	}
	return t, nil
}

// Delete removes a task. Remaining positions stay dense.
func (s *Service) Delete(_ context.Context, id string) error {
	if err := s.db.DeleteTask(id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

// Reorder rearranges the whole list to follow the given id order.
func (s *Service) Reorder(_ context.Context, ids []string) error {
	if err := s.db.Reorder(ids); err != nil {
		return err
	}
	if s.broker != nil {
		s.broker.Publish(sse.Event{Type: "tasks.changed", Data: map[string]string{}})
	}
	return nil
}

// Search delegates full-text search to the store.
func (s *Service) Search(_ context.Context, query string, limit int) ([]models.Task, error) {
	tasks, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *Service) publish(kind, id string) {
	if s.broker != nil {
		s.broker.PublishTaskEvent(kind, id)
	}
}

// contentChecksum digests the user-visible fields of a task. It backs the
// ETag used for optimistic concurrency, so it must not include volatile
// fields like UpdatedAt.
func contentChecksum(t *models.Task) string {
	reminder := ""
	if t.Reminder != nil {
		reminder = t.Reminder.UTC().Format(time.RFC3339)
	}
	data := fmt.Sprintf("%s\x00%s\x00%s\x00%t\x00%s\x00%s\x00%s\x00%s",
		t.ID, t.Title, t.Description, t.IsCompleted, t.DueDate, reminder, t.Category, t.Priority)
	return checksum.Sum([]byte(data))
}
