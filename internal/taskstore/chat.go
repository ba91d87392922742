package taskstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// CreateConversation inserts a new conversation.
func (db *DB) CreateConversation(c *models.Conversation) error {
	_, err := db.conn.Exec(`
		INSERT INTO conversations (id, created_at, updated_at) VALUES (?, ?, ?)
	`, c.ID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return apperr.ErrAlreadyExists
		}
		return fmt.Errorf("taskstore: insert conversation: %w", err)
	}
	return nil
}

// GetConversation returns one conversation by id.
func (db *DB) GetConversation(id string) (*models.Conversation, error) {
	var c models.Conversation
	err := db.conn.QueryRow(`
		SELECT id, created_at, updated_at FROM conversations WHERE id = ?
	`, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("taskstore: get conversation: %w", err)
	}
	return &c, nil
}

// AppendMessage stores one message and bumps the conversation's updated_at.
// The generated message id is written back to m.
func (db *DB) AppendMessage(m *models.Message) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("taskstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`
		INSERT INTO messages (conversation_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`, m.ConversationID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("taskstore: insert message: %w", err)
	}
	m.ID, _ = res.LastInsertId()

	_, err = tx.Exec(`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		m.CreatedAt, m.ConversationID)
	if err != nil {
		return fmt.Errorf("taskstore: touch conversation: %w", err)
	}

	return tx.Commit()
}

// ListMessages returns the most recent messages of a conversation in
// chronological order.
func (db *DB) ListMessages(conversationID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, conversation_id, role, content, created_at
		FROM (
			SELECT id, conversation_id, role, content, created_at
			FROM messages
			WHERE conversation_id = ?
			ORDER BY id DESC
			LIMIT ?
		)
		ORDER BY id
	`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("taskstore: list messages: %w", err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
