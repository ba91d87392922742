package taskstore

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "dagaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTask(title string) *models.Task {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	for _, table := range []string{"tasks", "conversations", "messages"} {
		if err := db.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestCreateAssignsPositions(t *testing.T) {
	db := testDB(t)

	for i, title := range []string{"first", "second", "third"} {
		task := newTask(title)
		if err := db.CreateTask(task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		if task.Position != i {
			t.Errorf("task %q position = %d, want %d", title, task.Position, i)
		}
	}

	tasks, err := db.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	if tasks[0].Title != "first" || tasks[2].Title != "third" {
		t.Errorf("unexpected order: %q, %q, %q", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestGetTask(t *testing.T) {
	db := testDB(t)

	reminder := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	task := newTask("call dentist")
	task.Description = "ask about friday"
	task.DueDate = "2026-09-01"
	task.Reminder = &reminder
	task.Category = "health"
	task.Priority = models.PriorityHigh
	if err := db.CreateTask(task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := db.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "call dentist" || got.DueDate != "2026-09-01" || got.Category != "health" {
		t.Errorf("got %+v", got)
	}
	if got.Reminder == nil || !got.Reminder.Equal(reminder) {
		t.Errorf("reminder = %v, want %v", got.Reminder, reminder)
	}

	if _, err := db.GetTask("no-such-id"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing task: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateTask(t *testing.T) {
	db := testDB(t)

	task := newTask("draft report")
	if err := db.CreateTask(task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	task.Title = "draft quarterly report"
	task.IsCompleted = true
	task.UpdatedAt = task.UpdatedAt.Add(time.Minute)
	if err := db.UpdateTask(task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	got, err := db.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "draft quarterly report" || !got.IsCompleted {
		t.Errorf("got %+v", got)
	}

	ghost := newTask("ghost")
	if err := db.UpdateTask(ghost); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCompactsPositions(t *testing.T) {
	db := testDB(t)

	var tasks []*models.Task
	for _, title := range []string{"a", "b", "c", "d"} {
		task := newTask(title)
		if err := db.CreateTask(task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		tasks = append(tasks, task)
	}

	// Delete "b"; c and d must shift down.
	if err := db.DeleteTask(tasks[1].ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	rest, err := db.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(rest) != 3 {
		t.Fatalf("got %d tasks, want 3", len(rest))
	}
	for i, want := range []string{"a", "c", "d"} {
		if rest[i].Title != want || rest[i].Position != i {
			t.Errorf("slot %d: got %q at position %d", i, rest[i].Title, rest[i].Position)
		}
	}

	if err := db.DeleteTask("no-such-id"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete missing: err = %v, want ErrNotFound", err)
	}
}

func TestReorder(t *testing.T) {
	db := testDB(t)

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task := newTask(title)
		if err := db.CreateTask(task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		ids = append(ids, task.ID)
	}

	if err := db.Reorder([]string{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	tasks, err := db.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if tasks[i].Title != want {
			t.Errorf("slot %d: got %q, want %q", i, tasks[i].Title, want)
		}
	}

	if err := db.Reorder([]string{ids[2], ids[0], "no-such-id"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("reorder unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestReorderRejectsPartialList(t *testing.T) {
	db := testDB(t)

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task := newTask(title)
		if err := db.CreateTask(task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		ids = append(ids, task.ID)
	}

	if err := db.Reorder([]string{ids[2]}); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("partial reorder: err = %v, want ErrInvalid", err)
	}
	if err := db.Reorder([]string{ids[0], ids[0], ids[1]}); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("duplicate id reorder: err = %v, want ErrInvalid", err)
	}

	tasks, err := db.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if tasks[i].Position != i {
			t.Errorf("slot %d: position = %d, want %d", i, tasks[i].Position, i)
		}
		if tasks[i].Title != want {
			t.Errorf("slot %d: got %q, want %q", i, tasks[i].Title, want)
		}
	}
}

func TestListFilters(t *testing.T) {
	db := testDB(t)

	open := newTask("open work item")
	open.Category = "work"
	done := newTask("done item")
	done.IsCompleted = true
	urgent := newTask("urgent item")
	urgent.Priority = models.PriorityHigh
	for _, task := range []*models.Task{open, done, urgent} {
		if err := db.CreateTask(task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	active := false
	tasks, err := db.ListTasks(TaskFilter{Completed: &active})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("active filter: got %d tasks, want 2", len(tasks))
	}

	tasks, err = db.ListTasks(TaskFilter{Category: "work"})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "open work item" {
		t.Errorf("category filter: got %+v", tasks)
	}

	tasks, err = db.ListTasks(TaskFilter{Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "urgent item" {
		t.Errorf("priority filter: got %+v", tasks)
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t)

	groceries := newTask("Buy groceries")
	groceries.Description = "milk and eggs"
	report := newTask("Write report")
	for _, task := range []*models.Task{groceries, report} {
		if err := db.CreateTask(task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	hits, err := db.Search("groceries", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != groceries.ID {
		t.Errorf("got %+v", hits)
	}

	hits, err = db.Search("milk", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != groceries.ID {
		t.Errorf("description search: got %+v", hits)
	}
}

func TestConversationsAndMessages(t *testing.T) {
	db := testDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	conv := &models.Conversation{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := db.CreateConversation(conv); err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	got, err := db.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("got %+v", got)
	}

	if err := db.CreateConversation(conv); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate conversation: err = %v, want ErrAlreadyExists", err)
	}

	for i, text := range []string{"add buy milk", `Added task: "buy milk"`} {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		msg := &models.Message{
			ConversationID: conv.ID,
			Role:           role,
			Content:        text,
			CreatedAt:      now.Add(time.Duration(i) * time.Second),
		}
		if err := db.AppendMessage(msg); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
		if msg.ID == 0 {
			t.Error("message id not assigned")
		}
	}

	msgs, err := db.ListMessages(conv.ID, 10)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("roles out of order: %q, %q", msgs[0].Role, msgs[1].Role)
	}

	// Appending moved updated_at forward.
	updated, err := db.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if !updated.UpdatedAt.After(conv.CreatedAt) {
		t.Errorf("updated_at = %v, want after %v", updated.UpdatedAt, conv.CreatedAt)
	}

	if _, err := db.GetConversation("no-such-id"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing conversation: err = %v, want ErrNotFound", err)
	}
}

func TestListMessagesLimit(t *testing.T) {
	db := testDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	conv := &models.Conversation{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := db.CreateConversation(conv); err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	for i := 0; i < 5; i++ {
		msg := &models.Message{
			ConversationID: conv.ID,
			Role:           "user",
			Content:        "message",
			CreatedAt:      now,
		}
		if err := db.AppendMessage(msg); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	msgs, err := db.ListMessages(conv.ID, 3)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	// The newest three, oldest first.
	if msgs[0].ID >= msgs[1].ID || msgs[1].ID >= msgs[2].ID {
		t.Errorf("ids out of order: %d, %d, %d", msgs[0].ID, msgs[1].ID, msgs[2].ID)
	}
}
