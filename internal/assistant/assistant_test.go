package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/taskservice"
	"github.com/starford/dagaz/internal/taskstore"
	"github.com/starford/dagaz/internal/testutil"
)

// A fixed clock keeps relative dates deterministic. It is set well in the
// future so derived reminders never trip the past-reminder check.
var fixedNow = time.Date(2040, 1, 5, 10, 0, 0, 0, time.UTC)

func testAssistant(t *testing.T) (*Service, *taskservice.Service, *taskstore.DB) {
	t.Helper()
	db := testutil.TestDB(t)
	tasks := taskservice.NewService(db, nil)
	svc := NewService(tasks, db, WithClock(func() time.Time { return fixedNow }))
	return svc, tasks, db
}

func seedTasks(t *testing.T, tasks *taskservice.Service, titles ...string) []models.Task {
	t.Helper()
	out := make([]models.Task, 0, len(titles))
	for _, title := range titles {
		task, err := tasks.Create(context.Background(), models.TaskCreate{Title: title})
		if err != nil {
			t.Fatalf("Create(%q): %v", title, err)
		}
		out = append(out, *task)
	}
	return out
}

func TestHandleMessageGreetingHelpUnknown(t *testing.T) {
	svc, _, _ := testAssistant(t)
	ctx := context.Background()

	tests := []struct {
		input string
		want  string
	}{
		{"hello", greetingReply},
		{"help", helpReply},
		{"what is the weather", unknownReply},
	}
	for _, tc := range tests {
		reply, err := svc.HandleMessage(ctx, "", tc.input)
		if err != nil {
			t.Fatalf("HandleMessage(%q): %v", tc.input, err)
		}
		if reply.Response != tc.want {
			t.Errorf("HandleMessage(%q) = %q, want %q", tc.input, reply.Response, tc.want)
		}
		if reply.ConversationID == "" {
			t.Error("missing conversation id")
		}
		if len(reply.ToolCalls) != 0 {
			t.Errorf("unexpected tool calls: %+v", reply.ToolCalls)
		}
	}
}

func TestHandleMessageAdd(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, "", "add buy milk tomorrow")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	want := `Added task: "buy milk" due on Jan 6, 2040 with medium priority`
	if reply.Response != want {
		t.Errorf("got %q, want %q", reply.Response, want)
	}
	if len(reply.ToolCalls) != 1 || reply.ToolCalls[0].Name != models.ToolAddTask {
		t.Fatalf("tool calls = %+v", reply.ToolCalls)
	}

	list, err := tasks.List(ctx, taskstore.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "buy milk" || list[0].DueDate != "2040-01-06" {
		t.Errorf("stored task = %+v", list)
	}
}

func TestHandleMessageAddWithModifiers(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, "", "add call the dentist tomorrow at 2pm for health urgent")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	want := `Added task: "call the dentist" due on Jan 6, 2040 in category "health" with high priority`
	if reply.Response != want {
		t.Errorf("got %q, want %q", reply.Response, want)
	}

	list, err := tasks.List(ctx, taskstore.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d tasks", len(list))
	}
	task := list[0]
	if task.Category != "health" || task.Priority != models.PriorityHigh {
		t.Errorf("task = %+v", task)
	}
	if task.Reminder == nil || task.Reminder.Hour() != 14 {
		t.Errorf("reminder = %v, want 14:00", task.Reminder)
	}
}

func TestHandleMessageCompleteByNumber(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()
	seedTasks(t, tasks, "first", "second", "third")

	reply, err := svc.HandleMessage(ctx, "", "complete task 2")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != `Marked task "second" as completed.` {
		t.Errorf("got %q", reply.Response)
	}

	active := false
	list, err := tasks.List(ctx, taskstore.TaskFilter{Completed: &active})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d active tasks, want 2", len(list))
	}

	// Numeric references count only active tasks, so "task 2" now means
	// what used to be the third task.
	reply, err = svc.HandleMessage(ctx, "", "complete task 2")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != `Marked task "third" as completed.` {
		t.Errorf("got %q", reply.Response)
	}
}

func TestHandleMessageCompleteOutOfRange(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()
	seedTasks(t, tasks, "only one")

	reply, err := svc.HandleMessage(ctx, "", "complete task 9")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != "Could not find that task to complete." {
		t.Errorf("got %q", reply.Response)
	}
}

func TestHandleMessageDeleteByFuzzyTitle(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()
	seedTasks(t, tasks, "Buy groceries", "Write report")

	reply, err := svc.HandleMessage(ctx, "", "delete grocer")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != `Deleted task "Buy groceries".` {
		t.Errorf("got %q", reply.Response)
	}

	list, err := tasks.List(ctx, taskstore.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Write report" {
		t.Errorf("remaining = %+v", list)
	}
}

func TestHandleMessageTypoCorrection(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()
	seedTasks(t, tasks, "water the plants")

	// "complte" is corrected to "complete" before parsing.
	reply, err := svc.HandleMessage(ctx, "", "complte water the plants")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != `Marked task "water the plants" as completed.` {
		t.Errorf("got %q", reply.Response)
	}
}

func TestHandleMessageSynonymRecovery(t *testing.T) {
	svc, _, _ := testAssistant(t)
	ctx := context.Background()

	// "make" is not a recognized verb on its own; synonym expansion maps
	// it to "add" and the message becomes an add command.
	reply, err := svc.HandleMessage(ctx, "", "make dinner plans")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !strings.Contains(reply.Response, `Added task: "dinner plans"`) {
		t.Errorf("got %q", reply.Response)
	}
}

func TestHandleMessageList(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, "", "list my tasks")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != "You have no active tasks." {
		t.Errorf("got %q", reply.Response)
	}

	var titles []string
	for i := 1; i <= 7; i++ {
		titles = append(titles, fmt.Sprintf("task number %d", i))
	}
	seedTasks(t, tasks, titles...)

	reply, err = svc.HandleMessage(ctx, "", "list my tasks")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !strings.HasPrefix(reply.Response, "You have 7 active tasks:") {
		t.Errorf("got %q", reply.Response)
	}
	if !strings.Contains(reply.Response, "1. task number 1") {
		t.Errorf("missing first entry in %q", reply.Response)
	}
	if !strings.Contains(reply.Response, "...and 2 more") {
		t.Errorf("missing truncation note in %q", reply.Response)
	}
	if strings.Contains(reply.Response, "task number 6") {
		t.Errorf("preview too long: %q", reply.Response)
	}
}

func TestHandleMessageUpdate(t *testing.T) {
	svc, tasks, _ := testAssistant(t)
	ctx := context.Background()
	seedTasks(t, tasks, "buy milk")

	reply, err := svc.HandleMessage(ctx, "", "update task 1 buy oat milk")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if reply.Response != `Updated task to: "buy oat milk".` {
		t.Errorf("got %q", reply.Response)
	}

	list, err := tasks.List(ctx, taskstore.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "buy oat milk" {
		t.Errorf("got %+v", list)
	}
}

func TestConversationContinuity(t *testing.T) {
	svc, _, db := testAssistant(t)
	ctx := context.Background()

	first, err := svc.HandleMessage(ctx, "", "hello")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	second, err := svc.HandleMessage(ctx, first.ConversationID, "help")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Errorf("conversation id changed: %q then %q", first.ConversationID, second.ConversationID)
	}

	msgs, err := db.ListMessages(first.ConversationID, 10)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	wantRoles := []string{models.RoleUser, models.RoleAssistant, models.RoleUser, models.RoleAssistant}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, wantRoles[i])
		}
	}
}

func TestHistory(t *testing.T) {
	svc, _, _ := testAssistant(t)
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, "", "hello")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	msgs, err := svc.History(ctx, reply.ConversationID, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Content != "hello" || msgs[1].Content != greetingReply {
		t.Errorf("got %+v", msgs)
	}

	if _, err := svc.History(ctx, "no-such-id", 10); err == nil {
		t.Error("expected error for unknown conversation")
	}
}
