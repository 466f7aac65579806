package task

import (
	"time"

	"github.com/google/uuid"
)

// Status is the task lifecycle state. The values match what the web client
// renders and what the Gantt import pipeline derives from percent-complete.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusReady      Status = "Ready"
	StatusInProgress Status = "In Progress"
	StatusBlocked    Status = "Blocked"
	StatusDone       Status = "Done"
	StatusCanceled   Status = "Canceled"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Task struct {
	id                  uuid.UUID
	projectID           uuid.UUID
	title               string
	description         string
	status              Status
	priority            Priority
	assigneeName        string
	startDate           *time.Time
	dueDate             *time.Time
	completedAt         *time.Time
	durationDays        *int
	percentComplete     *int
	externalReferenceID string
	notes               string
	createdAt           time.Time
	updatedAt           time.Time
}

type Option func(*Task)

func WithID(id uuid.UUID) Option {
	return func(t *Task) {
		t.id = id
	}
}

func WithStatus(status Status) Option {
	return func(t *Task) {
		t.status = status
	}
}

func WithPriority(priority Priority) Option {
	return func(t *Task) {
		t.priority = priority
	}
}

func WithDescription(description string) Option {
	return func(t *Task) {
		t.description = description
	}
}

func WithAssigneeName(name string) Option {
	return func(t *Task) {
		t.assigneeName = name
	}
}

func WithStartDate(d *time.Time) Option {
	return func(t *Task) {
		t.startDate = d
	}
}

func WithDueDate(d *time.Time) Option {
	return func(t *Task) {
		t.dueDate = d
	}
}

func WithCompletedAt(d *time.Time) Option {
	return func(t *Task) {
		t.completedAt = d
	}
}

func WithDurationDays(days *int) Option {
	return func(t *Task) {
		t.durationDays = days
	}
}

func WithPercentComplete(percent *int) Option {
	return func(t *Task) {
		t.percentComplete = percent
	}
}

func WithExternalReferenceID(id string) Option {
	return func(t *Task) {
		t.externalReferenceID = id
	}
}

func WithNotes(notes string) Option {
	return func(t *Task) {
		t.notes = notes
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(t *Task) {
		t.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(t *Task) {
		t.updatedAt = updatedAt
	}
}

func New(projectID uuid.UUID, title string, opts ...Option) *Task {
	t := &Task{
		id:        uuid.New(),
		projectID: projectID,
		title:     title,
		status:    StatusBacklog,
		priority:  PriorityMedium,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Task) ID() uuid.UUID               { return t.id }
func (t *Task) ProjectID() uuid.UUID        { return t.projectID }
func (t *Task) Title() string               { return t.title }
func (t *Task) Description() string         { return t.description }
func (t *Task) Status() Status              { return t.status }
func (t *Task) Priority() Priority          { return t.priority }
func (t *Task) AssigneeName() string        { return t.assigneeName }
func (t *Task) StartDate() *time.Time       { return t.startDate }
func (t *Task) DueDate() *time.Time         { return t.dueDate }
func (t *Task) CompletedAt() *time.Time     { return t.completedAt }
func (t *Task) DurationDays() *int          { return t.durationDays }
func (t *Task) PercentComplete() *int       { return t.percentComplete }
func (t *Task) ExternalReferenceID() string { return t.externalReferenceID }
func (t *Task) Notes() string               { return t.notes }
func (t *Task) CreatedAt() time.Time        { return t.createdAt }
func (t *Task) UpdatedAt() time.Time        { return t.updatedAt }

// StartDateISO returns the start date as "YYYY-MM-DD", or "" when unset.
func (t *Task) StartDateISO() string {
	if t.startDate == nil {
		return ""
	}
	return t.startDate.Format("2006-01-02")
}

func (t *Task) DueDateISO() string {
	if t.dueDate == nil {
		return ""
	}
	return t.dueDate.Format("2006-01-02")
}

func (t *Task) SetTitle(title string) {
	t.title = title
	t.touch()
}

func (t *Task) SetStatus(status Status) {
	t.status = status
	t.touch()
}

func (t *Task) SetStartDate(d *time.Time) {
	t.startDate = d
	t.touch()
}

func (t *Task) SetDueDate(d *time.Time) {
	t.dueDate = d
	t.touch()
}

func (t *Task) SetDurationDays(days *int) {
	t.durationDays = days
	t.touch()
}

func (t *Task) SetPercentComplete(percent *int) {
	t.percentComplete = percent
	t.touch()
}

func (t *Task) SetExternalReferenceID(id string) {
	t.externalReferenceID = id
	t.touch()
}

func (t *Task) SetAssigneeName(name string) {
	t.assigneeName = name
	t.touch()
}

func (t *Task) SetNotes(notes string) {
	t.notes = notes
	t.touch()
}

func (t *Task) touch() {
	t.updatedAt = time.Now()
}

// IsValidStatus reports whether s is one of the six lifecycle states.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusBacklog, StatusReady, StatusInProgress, StatusBlocked, StatusDone, StatusCanceled:
		return true
	}
	return false
}
