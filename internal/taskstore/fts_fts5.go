//go:build sqlite_fts5

package taskstore

import (
	"database/sql"
	"fmt"

	"github.com/starford/dagaz/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS tasks_fts USING fts5(
			id UNINDEXED,
			title,
			description,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, id, title, description string) {
	_, _ = tx.Exec(`DELETE FROM tasks_fts WHERE id = ?`, id)
	_, _ = tx.Exec(`INSERT INTO tasks_fts (id, title, description) VALUES (?, ?, ?)`,
		id, title, description)
}

func ftsDelete(tx *sql.Tx, id string) {
	_, _ = tx.Exec(`DELETE FROM tasks_fts WHERE id = ?`, id)
}

// Search performs an FTS5 full-text search over titles and descriptions.
func (db *DB) Search(query string, limit int) ([]models.Task, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT t.id, t.title, t.description, t.is_completed, t.due_date, t.reminder,
		       t.category, t.priority, t.position, t.checksum, t.created_at, t.updated_at
		FROM tasks_fts f
		JOIN tasks t ON t.id = f.id
		WHERE tasks_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("taskstore: search: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
