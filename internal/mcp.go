package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/dagaz/internal/assistant"
	"github.com/starford/dagaz/internal/mcpserver"
	"github.com/starford/dagaz/internal/taskservice"
	"github.com/starford/dagaz/internal/taskstore"
)

// RunMCP serves the MCP tools over stdio until the client disconnects.
// Stdout belongs to the MCP transport, so logs go to stderr.
func RunMCP(opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := taskstore.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init task store: %w", err)
	}
	defer db.Close()

	tasks := taskservice.NewService(db, nil)
	chat := assistant.NewService(tasks, db,
		assistant.WithHistoryLimit(cfg.Chat.HistoryLimit))

	logger.Info("MCP server starting on stdio", slog.String("sqlite_path", cfg.SQLite.Path))

	return mcpserver.New(tasks, chat).ServeStdio()
}
