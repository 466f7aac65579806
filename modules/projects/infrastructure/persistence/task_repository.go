package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence/models"
	"github.com/anprojects/anproyektim/pkg/composables"
)

var (
	ErrTaskNotFound = fmt.Errorf("task not found")
)

const (
	taskFindQuery = `
		SELECT id, project_id, title, description, status, priority, assignee_name,
		       start_date, due_date, completed_at, duration_days, percent_complete,
		       external_reference_id, notes, created_at, updated_at
		FROM tasks`

	taskInsertQuery = `
		INSERT INTO tasks (
			id, project_id, title, description, status, priority, assignee_name,
			start_date, due_date, completed_at, duration_days, percent_complete,
			external_reference_id, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	taskDeleteAllQuery = `DELETE FROM tasks`
)

// TaskRepository persists the task collection in PostgreSQL. SaveAll
// implements the pipeline's whole-snapshot write-back: callers are expected
// to wrap it in a transaction via the context (middleware.WithTransaction
// or composables.InTx) so the delete-and-reinsert is atomic.
type TaskRepository struct{}

func NewTaskRepository() task.Repository {
	return &TaskRepository{}
}

func (r *TaskRepository) GetAll(ctx context.Context) ([]*task.Task, error) {
	return r.queryTasks(ctx, taskFindQuery+" ORDER BY created_at, id")
}

func (r *TaskRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx, taskFindQuery+" WHERE project_id = $1 ORDER BY created_at, id", projectID.String())
}

func (r *TaskRepository) SaveAll(ctx context.Context, tasks []*task.Task) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, taskDeleteAllQuery); err != nil {
		return errors.Wrap(err, "failed to clear task collection")
	}

	for _, entity := range tasks {
		dbTask := ToDBTask(entity)
		if _, err := tx.Exec(ctx, taskInsertQuery,
			dbTask.ID,
			dbTask.ProjectID,
			dbTask.Title,
			dbTask.Description,
			dbTask.Status,
			dbTask.Priority,
			dbTask.AssigneeName,
			dbTask.StartDate,
			dbTask.DueDate,
			dbTask.CompletedAt,
			dbTask.DurationDays,
			dbTask.PercentComplete,
			dbTask.ExternalReferenceID,
			dbTask.Notes,
			dbTask.CreatedAt,
			dbTask.UpdatedAt,
		); err != nil {
			return errors.Wrapf(err, "failed to insert task %s", dbTask.ID)
		}
	}

	return nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tasks")
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		var dbTask models.Task
		if err := rows.Scan(
			&dbTask.ID,
			&dbTask.ProjectID,
			&dbTask.Title,
			&dbTask.Description,
			&dbTask.Status,
			&dbTask.Priority,
			&dbTask.AssigneeName,
			&dbTask.StartDate,
			&dbTask.DueDate,
			&dbTask.CompletedAt,
			&dbTask.DurationDays,
			&dbTask.PercentComplete,
			&dbTask.ExternalReferenceID,
			&dbTask.Notes,
			&dbTask.CreatedAt,
			&dbTask.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan task row")
		}

		entity, err := ToDomainTask(&dbTask)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map task row")
		}
		tasks = append(tasks, entity)
	}

	return tasks, rows.Err()
}
