package taskstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// TaskFilter narrows a ListTasks call. Zero values mean no filtering.
type TaskFilter struct {
	Completed *bool
	Category  string
	Priority  models.Priority
}

const taskColumns = `id, title, description, is_completed, due_date, reminder,
	category, priority, position, checksum, created_at, updated_at`

// CreateTask inserts a task at the end of the list. The task's position is
// assigned inside the transaction and written back to t.
func (db *DB) CreateTask(t *models.Task) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("taskstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := tx.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&t.Position); err != nil {
		return fmt.Errorf("taskstore: next position: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Description, t.IsCompleted, t.DueDate, t.Reminder,
		t.Category, t.Priority, t.Position, t.Checksum, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("taskstore: insert task: %w", err)
	}

	ftsUpsert(tx, t.ID, t.Title, t.Description)
	return tx.Commit()
}

// GetTask returns one task by id.
func (db *DB) GetTask(id string) (*models.Task, error) {
	row := db.conn.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("taskstore: get task: %w", err)
	}
	return t, nil
}

// ListTasks returns tasks in display order, optionally filtered.
func (db *DB) ListTasks(f TaskFilter) ([]models.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks`
	var conds []string
	var args []any
	if f.Completed != nil {
		conds = append(conds, `is_completed = ?`)
		args = append(args, *f.Completed)
	}
	if f.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, f.Category)
	}
	if f.Priority != "" {
		conds = append(conds, `priority = ?`)
		args = append(args, f.Priority)
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	q += ` ORDER BY position`

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("taskstore: list tasks: %w", err)
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

// UpdateTask replaces the mutable fields of an existing task.
func (db *DB) UpdateTask(t *models.Task) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("taskstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`
		UPDATE tasks SET
			title        = ?,
			description  = ?,
			is_completed = ?,
			due_date     = ?,
			reminder     = ?,
			category     = ?,
			priority     = ?,
			checksum     = ?,
			updated_at   = ?
		WHERE id = ?
	`, t.Title, t.Description, t.IsCompleted, t.DueDate, t.Reminder,
		t.Category, t.Priority, t.Checksum, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("taskstore: update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}

	ftsUpsert(tx, t.ID, t.Title, t.Description)
	return tx.Commit()
}

// DeleteTask removes a task and closes the position gap it leaves, so
// positions stay dense.
func (db *DB) DeleteTask(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("taskstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var pos int
	err = tx.QueryRow(`SELECT position FROM tasks WHERE id = ?`, id).Scan(&pos)
	if err == sql.ErrNoRows {
		return apperr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("taskstore: delete task: %w", err)
	}

	ftsDelete(tx, id)
	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("taskstore: delete task: %w", err)
	}
	if _, err := tx.Exec(`UPDATE tasks SET position = position - 1 WHERE position > ?`, pos); err != nil {
		return fmt.Errorf("taskstore: compact positions: %w", err)
	}

	return tx.Commit()
}

// Reorder assigns dense positions 0..n-1 following the order of ids. The id
// list must be a permutation of every task id; anything less would leave
// holes or duplicates in the position sequence.
func (db *DB) Reorder(ids []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("taskstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate task id %q", apperr.ErrInvalid, id)
		}
		seen[id] = struct{}{}
	}

	var total int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&total); err != nil {
		return fmt.Errorf("taskstore: count tasks: %w", err)
	}
	if len(ids) != total {
		return fmt.Errorf("%w: reorder lists %d of %d tasks", apperr.ErrInvalid, len(ids), total)
	}

	stmt, err := tx.Prepare(`UPDATE tasks SET position = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("taskstore: prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		res, err := stmt.Exec(i, id)
		if err != nil {
			return fmt.Errorf("taskstore: reorder: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.ErrNotFound
		}
	}

	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var t models.Task
	var reminder sql.NullTime
	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.DueDate,
		&reminder, &t.Category, &t.Priority, &t.Position, &t.Checksum,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reminder.Valid {
		t.Reminder = &reminder.Time
	}
	return &t, nil
}
