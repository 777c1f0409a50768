package task

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var (
	ErrNotFound    = errors.New("task not found")
	ErrUnknownKind = errors.New("unknown parent kind")
)

type Status string

const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParentKind scopes a task to what it belongs to. One task type with a
// discriminator replaces the general/case/project triplet.
type ParentKind string

const (
	ParentGeneral ParentKind = "general"
	ParentCase    ParentKind = "case"
	ParentProject ParentKind = "project"
)

func (k ParentKind) Valid() bool {
	switch k {
	case ParentGeneral, ParentCase, ParentProject:
		return true
	}

	return false
}

type Task struct {
	ID         string
	TenantID   string
	Title      string
	Assignee   string
	DueDate    *time.Time
	Status     Status
	Priority   Priority
	ParentKind ParentKind
	ParentID   string // empty for general tasks

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Overdue reports whether the task has a due date in the past and is not
// completed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}
