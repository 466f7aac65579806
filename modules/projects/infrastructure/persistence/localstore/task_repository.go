package localstore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
)

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) task.Repository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) GetAll(_ context.Context) ([]*task.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.read()
	if err != nil {
		return nil, err
	}
	tasks := make([]*task.Task, 0, len(doc.Tasks))
	for i := range doc.Tasks {
		entity, err := taskFromRecord(&doc.Tasks[i])
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, entity)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*task.Task, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks := make([]*task.Task, 0, len(all))
	for _, entity := range all {
		if entity.ProjectID() == projectID {
			tasks = append(tasks, entity)
		}
	}
	return tasks, nil
}

func (r *TaskRepository) SaveAll(_ context.Context, tasks []*task.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.read()
	if err != nil {
		return err
	}
	records := make([]taskRecord, 0, len(tasks))
	for _, entity := range tasks {
		records = append(records, taskToRecord(entity))
	}
	doc.Tasks = records
	return r.store.write(doc)
}

func taskToRecord(entity *task.Task) taskRecord {
	return taskRecord{
		ID:                  entity.ID().String(),
		ProjectID:           entity.ProjectID().String(),
		Title:               entity.Title(),
		Description:         entity.Description(),
		Status:              string(entity.Status()),
		Priority:            string(entity.Priority()),
		AssigneeName:        entity.AssigneeName(),
		StartDate:           timeToRecord(entity.StartDate()),
		DueDate:             timeToRecord(entity.DueDate()),
		CompletedAt:         timeToRecord(entity.CompletedAt()),
		DurationDays:        entity.DurationDays(),
		PercentComplete:     entity.PercentComplete(),
		ExternalReferenceID: entity.ExternalReferenceID(),
		Notes:               entity.Notes(),
		CreatedAt:           entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:           entity.UpdatedAt().Format(time.RFC3339),
	}
}

func taskFromRecord(record *taskRecord) (*task.Task, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid task id %q", record.ID)
	}
	projectID, err := uuid.Parse(record.ProjectID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid project id %q", record.ProjectID)
	}
	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid created_at %q", record.CreatedAt)
	}
	updatedAt, err := time.Parse(time.RFC3339, record.UpdatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid updated_at %q", record.UpdatedAt)
	}

	opts := []task.Option{
		task.WithID(id),
		task.WithDescription(record.Description),
		task.WithStatus(task.Status(record.Status)),
		task.WithPriority(task.Priority(record.Priority)),
		task.WithAssigneeName(record.AssigneeName),
		task.WithExternalReferenceID(record.ExternalReferenceID),
		task.WithNotes(record.Notes),
		task.WithCreatedAt(createdAt),
		task.WithUpdatedAt(updatedAt),
	}
	if t, err := timeFromRecord(record.StartDate); err != nil {
		return nil, err
	} else if t != nil {
		opts = append(opts, task.WithStartDate(t))
	}
	if t, err := timeFromRecord(record.DueDate); err != nil {
		return nil, err
	} else if t != nil {
		opts = append(opts, task.WithDueDate(t))
	}
	if t, err := timeFromRecord(record.CompletedAt); err != nil {
		return nil, err
	} else if t != nil {
		opts = append(opts, task.WithCompletedAt(t))
	}
	if record.DurationDays != nil {
		opts = append(opts, task.WithDurationDays(record.DurationDays))
	}
	if record.PercentComplete != nil {
		opts = append(opts, task.WithPercentComplete(record.PercentComplete))
	}

	return task.New(projectID, record.Title, opts...), nil
}

func timeToRecord(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func timeFromRecord(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		// Date-only values come from imported snapshots.
		t, err = time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid timestamp %q", *s)
		}
	}
	return &t, nil
}
