package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters allowed in a task title.
const MaxTitleLength = 200

// Task-specific validation errors
var (
	// ErrTaskTitleEmpty is returned when a task's title is empty or whitespace only.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds MaxTitleLength.
	ErrTaskTitleTooLong = errors.New("task title is too long")
)

// Task represents a single tracked task.
// The ID is assigned by the store on creation and is the positive integer
// identifier used in URLs.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task with the given title, description, and done flag.
// The ID is left at zero until the store assigns one on creation.
// Returns an error if validation fails.
func NewTask(title, description string, done bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Done:        done,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTaskTitleTooLong
	}

	return nil
}

// Apply replaces the task's editable fields and refreshes the UpdatedAt
// timestamp. ID and CreatedAt are never touched.
// Returns an error if the new values fail validation, leaving the task unchanged.
func (t *Task) Apply(title, description string, done bool) error {
	// Validate on a copy so a failed update leaves the task intact
	updated := *t
	updated.Title = title
	updated.Description = description
	updated.Done = done

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*t = updated
	return nil
}
