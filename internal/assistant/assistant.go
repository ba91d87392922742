// Package assistant turns chat messages into task operations. Each incoming
// message is typo-corrected, parsed into a command, executed against the task
// service, and answered with a plain-text reply plus a record of the tool
// calls performed.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/interpreter"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/nlp"
	"github.com/starford/dagaz/internal/taskservice"
	"github.com/starford/dagaz/internal/taskstore"
)

const (
	greetingReply = "Hello! I'm your AI assistant. You can ask me to add tasks, complete tasks, or anything else you need help with."
	helpReply     = "I can help you manage your tasks. Try commands like: 'add buy milk tomorrow', 'complete task 1', 'list tasks', 'delete task 2', or 'edit task 3'."
	unknownReply  = "I'm not sure how to help with that. Try asking me to add, complete, list, or delete tasks."

	// Fuzzy title lookups below this score are treated as no match.
	minMatchScore = 0.4

	// How many tasks a list reply spells out before truncating.
	listPreview = 5
)

// Reply is the assistant's answer to one chat message.
type Reply struct {
	Response       string            `json:"response"`
	ConversationID string            `json:"conversation_id"`
	ToolCalls      []models.ToolCall `json:"tool_calls,omitempty"`
}

// Service executes chat commands against the task service and persists the
// conversation transcript.
type Service struct {
	tasks        *taskservice.Service
	db           taskstore.Store
	parser       *interpreter.Parser
	now          func() time.Time
	historyLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, and with it the parser's view of
// relative dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.parser = interpreter.New(interpreter.WithClock(now))
	}
}

// WithHistoryLimit caps how many messages History returns per conversation.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// NewService creates an assistant backed by the given task service and store.
func NewService(tasks *taskservice.Service, db taskstore.Store, opts ...Option) *Service {
	s := &Service{
		tasks:  tasks,
		db:     db,
		parser: interpreter.New(),
		now:    time.Now,

		historyLimit: 50,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleMessage processes one chat message. An empty conversationID starts a
// new conversation; the id to continue with is echoed in the reply.
func (s *Service) HandleMessage(ctx context.Context, conversationID, text string) (*Reply, error) {
	conv, err := s.ensureConversation(conversationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	userMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        text,
		CreatedAt:      now,
	}
	if err := s.db.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	cmd := s.parseCommand(text)
	response, calls, err := s.dispatch(ctx, cmd)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleAssistant,
		Content:        response,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.db.AppendMessage(assistantMsg); err != nil {
		return nil, err
	}

	return &Reply{
		Response:       response,
		ConversationID: conv.ID,
		ToolCalls:      calls,
	}, nil
}

// History returns the recent transcript of a conversation.
func (s *Service) History(_ context.Context, conversationID string, limit int) ([]models.Message, error) {
	if _, err := s.db.GetConversation(conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	msgs, err := s.db.ListMessages(conversationID, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// parseCommand interprets one message. Unrecognized input gets a second
// chance through synonym expansion, so "make dinner plans" still lands on
// the add command.
func (s *Service) parseCommand(text string) interpreter.Command {
	normalized := nlp.CorrectTypos(text)
	cmd := s.parser.Parse(normalized)
	if cmd.Action != interpreter.ActionNone {
		return cmd
	}
	for _, variant := range nlp.ExpandCommand(normalized)[1:] {
		if alt := s.parser.Parse(variant); alt.Action != interpreter.ActionNone {
			return alt
		}
	}
	return cmd
}

func (s *Service) ensureConversation(id string) (*models.Conversation, error) {
	if id != "" {
		conv, err := s.db.GetConversation(id)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		// Unknown ids are adopted so a client-generated id keeps working.
	} else {
		id = uuid.NewString()
	}

	now := s.now().UTC()
	conv := &models.Conversation{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := s.db.CreateConversation(conv); err != nil && !errors.Is(err, apperr.ErrAlreadyExists) {
		return nil, err
	}
	return conv, nil
}

func (s *Service) dispatch(ctx context.Context, cmd interpreter.Command) (string, []models.ToolCall, error) {
	switch cmd.Action {
	case interpreter.ActionGreeting:
		return greetingReply, nil, nil
	case interpreter.ActionHelp:
		return helpReply, nil, nil
	case interpreter.ActionAdd:
		return s.handleAdd(ctx, cmd)
	case interpreter.ActionComplete:
		return s.handleComplete(ctx, cmd)
	case interpreter.ActionDelete:
		return s.handleDelete(ctx, cmd)
	case interpreter.ActionList:
		return s.handleList(ctx)
	case interpreter.ActionUpdate:
		return s.handleUpdate(ctx, cmd)
	default:
		return unknownReply, nil, nil
	}
}

func (s *Service) handleAdd(ctx context.Context, cmd interpreter.Command) (string, []models.ToolCall, error) {
	title := cmd.Title
	if title == "" {
		title = "New task"
	}

	req := models.TaskCreate{
		Title:    title,
		DueDate:  cmd.DueDate,
		Category: cmd.Category,
		Priority: cmd.Priority,
		Reminder: s.reminderFor(cmd),
	}

	task, err := s.tasks.Create(ctx, req)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			return "Sorry, I could not add that task. Please try again.", nil, nil
		}
		return "", nil, err
	}

	response := fmt.Sprintf("Added task: %q", task.Title)
	if task.DueDate != "" {
		response += " due on " + formatDate(task.DueDate)
	}
	if task.Category != "" {
		response += fmt.Sprintf(" in category %q", task.Category)
	}
	response += fmt.Sprintf(" with %s priority", task.Priority)

	params := map[string]any{"title": task.Title, "priority": string(task.Priority)}
	if task.DueDate != "" {
		params["due_date"] = task.DueDate
	}
	if task.Category != "" {
		params["category"] = task.Category
	}
	return response, []models.ToolCall{{
		Name:       models.ToolAddTask,
		Parameters: params,
		Result:     task,
	}}, nil
}

func (s *Service) handleComplete(ctx context.Context, cmd interpreter.Command) (string, []models.ToolCall, error) {
	target, err := s.resolveTarget(ctx, cmd)
	if err != nil {
		return "", nil, err
	}
	if target == nil {
		return "Could not find that task to complete.", nil, nil
	}

	task, err := s.tasks.Toggle(ctx, target.ID)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Marked task %q as completed.", task.Title), []models.ToolCall{{
		Name:       models.ToolCompleteTask,
		Parameters: map[string]any{"task_id": task.ID},
		Result:     task,
	}}, nil
}

func (s *Service) handleDelete(ctx context.Context, cmd interpreter.Command) (string, []models.ToolCall, error) {
	target, err := s.resolveTarget(ctx, cmd)
	if err != nil {
		return "", nil, err
	}
	if target == nil {
		return "Could not find that task to delete.", nil, nil
	}

	if err := s.tasks.Delete(ctx, target.ID); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Deleted task %q.", target.Title), []models.ToolCall{{
		Name:       models.ToolDeleteTask,
		Parameters: map[string]any{"task_id": target.ID},
	}}, nil
}

func (s *Service) handleList(ctx context.Context) (string, []models.ToolCall, error) {
	active, err := s.activeTasks(ctx)
	if err != nil {
		return "", nil, err
	}

	call := models.ToolCall{
		Name:       models.ToolListTasks,
		Parameters: map[string]any{},
		Result:     active,
	}
	if len(active) == 0 {
		return "You have no active tasks.", []models.ToolCall{call}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d active tasks:", len(active))
	for i, t := range active {
		if i == listPreview {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, t.Title)
	}
	if len(active) > listPreview {
		fmt.Fprintf(&b, "\n...and %d more", len(active)-listPreview)
	}
	return b.String(), []models.ToolCall{call}, nil
}

func (s *Service) handleUpdate(ctx context.Context, cmd interpreter.Command) (string, []models.ToolCall, error) {
	target, err := s.resolveTarget(ctx, cmd)
	if err != nil {
		return "", nil, err
	}
	if target == nil || cmd.Title == "" {
		return "Could not find that task to edit.", nil, nil
	}

	req := models.TaskUpdate{Title: &cmd.Title}
	if cmd.DueDate != "" {
		req.DueDate = &cmd.DueDate
	}
	if cmd.Priority != "" {
		req.Priority = &cmd.Priority
	}
	if cmd.Category != "" {
		req.Category = &cmd.Category
	}

	task, err := s.tasks.Update(ctx, target.ID, req, "")
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Updated task to: %q.", task.Title), []models.ToolCall{{
		Name:       models.ToolUpdateTask,
		Parameters: map[string]any{"task_id": task.ID, "title": task.Title},
		Result:     task,
	}}, nil
}

// resolveTarget finds the task a command refers to, by 1-based position in
// the active list for numeric references, or by fuzzy title match for
// free-text hints. A nil task with nil error means nothing matched.
func (s *Service) resolveTarget(ctx context.Context, cmd interpreter.Command) (*models.Task, error) {
	active, err := s.activeTasks(ctx)
	if err != nil {
		return nil, err
	}

	if cmd.TaskRef != "" {
		n, err := strconv.Atoi(cmd.TaskRef)
		if err != nil || n < 1 || n > len(active) {
			return nil, nil
		}
		return &active[n-1], nil
	}

	if cmd.TitleHint == "" {
		return nil, nil
	}
	titles := make([]string, len(active))
	for i, t := range active {
		titles[i] = t.Title
	}
	best, ok := nlp.BestMatch(cmd.TitleHint, titles)
	if !ok || best.Score < minMatchScore {
		return nil, nil
	}
	for i := range active {
		if active[i].Title == best.Value {
			return &active[i], nil
		}
	}
	return nil, nil
}

func (s *Service) activeTasks(ctx context.Context) ([]models.Task, error) {
	completed := false
	return s.tasks.List(ctx, taskstore.TaskFilter{Completed: &completed})
}

// reminderFor derives a reminder timestamp when the command carries an
// explicit time of day. Past times are dropped rather than rejected.
func (s *Service) reminderFor(cmd interpreter.Command) *time.Time {
	if cmd.DueTime == "" {
		return nil
	}
	date := cmd.DueDate
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}
	at, err := time.Parse("2006-01-02 15:04", date+" "+cmd.DueTime)
	if err != nil || at.Before(s.now().UTC()) {
		return nil
	}
	return &at
}

func formatDate(iso string) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return d.Format("Jan 2, 2006")
}
