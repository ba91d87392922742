package mcpserver

// CommandReference describes the natural-language command grammar the task
// assistant understands. LLM consumers should read it before phrasing chat
// commands.
const CommandReference = `# Dagaz Command Reference

The chat tool accepts one plain-text command per message. Commands are
case-insensitive and tolerant of common typos ("complte", "tmrw", "taks").

## Verbs

| Intent   | Trigger words                          | Examples                              |
|----------|----------------------------------------|---------------------------------------|
| add      | add, create, new (at start of message) | add buy milk tomorrow                 |
| complete | complete, done, finish                 | complete task 1, finish the report    |
| delete   | delete, remove, kill                   | delete task 2, remove groceries       |
| list     | list, show, view                       | list my tasks                         |
| edit     | edit, update (needs a task number)     | edit task 3 call the plumber instead  |

Greetings (hello, hi, hey) and "help" get a canned reply and change nothing.

## Referring to tasks

1. **By number** – "task 3" or a bare "3" counts 1-based through the ACTIVE
   (incomplete) tasks in display order. Completed tasks are skipped.
2. **By title** – any other text after the verb is fuzzy-matched against
   active task titles; a partial word like "grocer" finds "Buy groceries".

## Modifiers (for add and edit)

- **Relative dates**: tomorrow, today, tonight (tonight implies 20:00).
- **Explicit dates**: 12/05 or 12/05/2026 (month/day, year optional).
- **Times**: "at 5", "at 5:30pm", "at 17:00".
- **Priority**: urgent, important, high priority; low priority, not urgent;
  medium priority.
- **Category**: work, personal, shopping, health, medical (medical files
  under health).

Matched modifier phrases are stripped from the task title, so
"add call the dentist tomorrow at 2pm urgent" creates the task
"call the dentist" due tomorrow at 14:00 with high priority.

## Replies

Every reply is plain text plus a structured list of the tool calls the
assistant executed (tool_name, parameters, result), suitable for rendering
a confirmation UI.
`
