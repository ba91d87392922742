// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Dagaz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/assistant"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/taskservice"
	"github.com/starford/dagaz/internal/taskstore"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp   *server.MCPServer
	tasks *taskservice.Service
	chat  *assistant.Service
}

// New creates a new MCP server with all Dagaz tools registered.
func New(tasks *taskservice.Service, chat *assistant.Service) *Server {
	s := &Server{tasks: tasks, chat: chat}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send a natural-language command to the task assistant. "+
			"Understands the same command language as the chat UI; read the "+
			"get_command_reference tool or the dagaz://commands resource for the grammar."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The command text, e.g. 'add buy milk tomorrow'")),
		mcp.WithString("conversation_id", mcp.Description("Optional conversation id to continue")),
	), s.chatMessage)

	s.mcp.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Create a new task at the end of the list."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("description", mcp.Description("Optional longer description")),
		mcp.WithString("due_date", mcp.Description("Optional due date, YYYY-MM-DD")),
		mcp.WithString("category", mcp.Description("Optional category, e.g. work, personal")),
		mcp.WithString("priority", mcp.Description("Optional priority: low, medium, or high")),
	), s.addTask)

	s.mcp.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks in display order."),
		mcp.WithString("completed", mcp.Description("Optional filter: 'true' or 'false'")),
		mcp.WithString("category", mcp.Description("Optional category filter")),
	), s.listTasks)

	s.mcp.AddTool(mcp.NewTool("complete_task",
		mcp.WithDescription("Flip a task's completion state."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
	), s.completeTask)

	s.mcp.AddTool(mcp.NewTool("update_task",
		mcp.WithDescription("Change fields of an existing task."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("due_date", mcp.Description("New due date, YYYY-MM-DD")),
		mcp.WithString("category", mcp.Description("New category")),
		mcp.WithString("priority", mcp.Description("New priority: low, medium, or high")),
	), s.updateTask)

	s.mcp.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task. Remaining tasks keep a dense order."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
	), s.deleteTask)

	s.mcp.AddTool(mcp.NewTool("search_tasks",
		mcp.WithDescription("Full-text search through task titles and descriptions."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchTasks)

	s.mcp.AddTool(mcp.NewTool("get_command_reference",
		mcp.WithDescription("Returns the assistant's command language reference. "+
			"Call this before using the chat tool to phrase commands it will understand."),
	), s.getCommandReference)

	// Resource: command language reference.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://commands", "Command Reference",
			mcp.WithResourceDescription("The natural-language command grammar the task assistant understands."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCommandsResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) chatMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conversationID := ""
	if id, err := req.RequireString("conversation_id"); err == nil {
		conversationID = id
	}

	reply, err := s.chat.HandleMessage(ctx, conversationID, message)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(reply, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	create := models.TaskCreate{Title: title}
	if v, err := req.RequireString("description"); err == nil {
		create.Description = v
	}
	if v, err := req.RequireString("due_date"); err == nil {
		create.DueDate = v
	}
	if v, err := req.RequireString("category"); err == nil {
		create.Category = v
	}
	if v, err := req.RequireString("priority"); err == nil {
		create.Priority = models.Priority(v)
	}

	task, err := s.tasks.Create(ctx, create)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter taskstore.TaskFilter
	if v, err := req.RequireString("completed"); err == nil && v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid 'completed' value: %s", v)), nil
		}
		filter.Completed = &completed
	}
	if v, err := req.RequireString("category"); err == nil {
		filter.Category = v
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) completeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	task, err := s.tasks.Toggle(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) updateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var update models.TaskUpdate
	if v, err := req.RequireString("title"); err == nil {
		update.Title = &v
	}
	if v, err := req.RequireString("due_date"); err == nil {
		update.DueDate = &v
	}
	if v, err := req.RequireString("category"); err == nil {
		update.Category = &v
	}
	if v, err := req.RequireString("priority"); err == nil {
		p := models.Priority(v)
		update.Priority = &p
	}

	task, err := s.tasks.Update(ctx, id, update, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) searchTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.tasks.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCommandReference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CommandReference), nil
}

func (s *Server) readCommandsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://commands",
			MIMEType: "text/markdown",
			Text:     CommandReference,
		},
	}, nil
}
