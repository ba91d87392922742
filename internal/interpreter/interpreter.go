// Package interpreter classifies one line of user input into a task command
// and extracts its parameters. Parsing is pure: the parser performs no I/O,
// retains no state between calls, and never fails — unrecognized input
// degrades to ActionNone carrying the original text.
package interpreter

import (
	"regexp"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/models"
)

// Action is the classified purpose of a user utterance.
type Action string

// Recognized actions.
const (
	ActionNone     Action = "none"
	ActionGreeting Action = "greeting"
	ActionHelp     Action = "help"
	ActionAdd      Action = "add"
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
	ActionList     Action = "list"
	ActionUpdate   Action = "update"
)

// Command is the parsed form of one user message. It is created per message,
// consumed by dispatch, and never persisted.
type Command struct {
	Action Action

	// Title is the extracted task title, present for add and update.
	Title string

	// TaskRef is a numeric task reference ("3" from "task 3"), and
	// TitleHint the free-text fallback used for fuzzy lookup, for
	// complete, delete, and update.
	TaskRef   string
	TitleHint string

	// Optional modifiers extracted from add/update text.
	DueDate  string // YYYY-MM-DD
	DueTime  string // HH:MM, 24-hour
	Priority models.Priority
	Category string

	// Original is the trimmed input, preserved for fallback replies.
	Original string
}

// Classification patterns. Order of use is a deliberate precedence; see Parse.
var (
	greetingRe = regexp.MustCompile(`\b(?:hello|hi|hey)\b`)
	helpRe     = regexp.MustCompile(`\bhelp\b|what can you do`)
	completeRe = regexp.MustCompile(`\b(?:complete|done|finish)\b`)
	deleteRe   = regexp.MustCompile(`\b(?:delete|remove|kill)\b`)
	listRe     = regexp.MustCompile(`\b(?:show|list|view)\b`)
	addRe      = regexp.MustCompile(`(?i)^(?:add|create|new)\s+(.+)$`)
	updateRe   = regexp.MustCompile(`\b(?:edit|update)\b`)

	completeRefRe  = regexp.MustCompile(`(?i)(?:complete|done|finish)\s+(?:task\s+)?(\d+)`)
	deleteRefRe    = regexp.MustCompile(`(?i)(?:delete|remove|kill)\s+(?:task\s+)?(\d+)`)
	updateRefRe    = regexp.MustCompile(`(?i)(?:edit|update)\s+(?:task\s+)?(\d+)\s*(.*)`)
	completeHintRe = regexp.MustCompile(`(?i)\b(?:complete|done|finish)\s+(?:task\s+)?`)
	deleteHintRe   = regexp.MustCompile(`(?i)\b(?:delete|remove|kill)\s+(?:task\s+)?`)
)

// Parser turns free text into Commands. The clock is injectable so relative
// dates ("tomorrow") are testable.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock overrides the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse classifies input and extracts parameters. The first matching rule
// wins: greeting, help, complete, delete, list, add, update, none.
func (p *Parser) Parse(input string) Command {
	original := strings.TrimSpace(input)
	cmd := Command{Action: ActionNone, Original: original}
	if original == "" {
		return cmd
	}
	lower := strings.ToLower(original)

	switch {
	case greetingRe.MatchString(lower):
		cmd.Action = ActionGreeting

	case helpRe.MatchString(lower):
		cmd.Action = ActionHelp

	case completeRe.MatchString(lower):
		cmd.Action = ActionComplete
		cmd.TaskRef, cmd.TitleHint = taskReference(original, completeRefRe, completeHintRe)

	case deleteRe.MatchString(lower):
		cmd.Action = ActionDelete
		cmd.TaskRef, cmd.TitleHint = taskReference(original, deleteRefRe, deleteHintRe)

	case listRe.MatchString(lower):
		cmd.Action = ActionList

	case addRe.MatchString(lower):
		cmd.Action = ActionAdd
		rest := addRe.FindStringSubmatch(original)[1]
		cmd.Title = p.extractModifiers(rest, &cmd)

	case updateRe.MatchString(lower):
		m := updateRefRe.FindStringSubmatch(original)
		if m == nil {
			// An edit verb without a task number is unparseable.
			return cmd
		}
		cmd.Action = ActionUpdate
		cmd.TaskRef = m[1]
		cmd.Title = p.extractModifiers(m[2], &cmd)
	}

	return cmd
}

// taskReference extracts either a numeric task reference or, failing that,
// the verb-stripped remainder as a free-text hint for fuzzy lookup.
func taskReference(text string, refRe, hintRe *regexp.Regexp) (ref, hint string) {
	if m := refRe.FindStringSubmatch(text); m != nil {
		return m[1], ""
	}
	hint = strings.TrimSpace(hintRe.ReplaceAllString(text, ""))
	return "", hint
}
