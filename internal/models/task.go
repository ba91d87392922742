// Package models defines the domain types for Dagaz.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Priority is the urgency level of a task.
type Priority string

// Priority levels.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task represents one task record in a user's list.
//
// Position values across a list form a dense 0-based sequence after every
// create, delete, and reorder operation.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     string     `json:"due_date,omitempty"` // calendar date, YYYY-MM-DD
	Reminder    *time.Time `json:"reminder,omitempty"`
	Category    string     `json:"category,omitempty"`
	Priority    Priority   `json:"priority"`
	Position    int        `json:"position"`
	Checksum    string     `json:"checksum"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskCreate carries the fields accepted when creating a task.
type TaskCreate struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	Category    string     `json:"category,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
}

// Validate validates a create request. The reminder must not be in the past.
func (c TaskCreate) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Description, validation.Length(0, 1000)),
		validation.Field(&c.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		validation.Field(&c.DueDate, validation.Date("2006-01-02")),
	); err != nil {
		return err
	}
	if c.Reminder != nil && c.Reminder.Before(time.Now()) {
		return validation.Errors{"reminder": validation.NewError(
			"validation_reminder_past", "reminder must not be in the past")}
	}
	return nil
}

// TaskUpdate carries the fields accepted when updating a task.
// Nil pointers mean "leave unchanged".
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
	DueDate     *string    `json:"due_date,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
}

// Validate validates an update request.
func (u TaskUpdate) Validate() error {
	fields := []*validation.FieldRules{}
	if u.Title != nil {
		fields = append(fields, validation.Field(&u.Title, validation.Required, validation.Length(1, 200)))
	}
	if u.Description != nil {
		fields = append(fields, validation.Field(&u.Description, validation.Length(0, 1000)))
	}
	if u.Priority != nil {
		fields = append(fields, validation.Field(&u.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)))
	}
	if u.DueDate != nil {
		fields = append(fields, validation.Field(&u.DueDate, validation.Date("2006-01-02")))
	}
	return validation.ValidateStruct(&u, fields...)
}
