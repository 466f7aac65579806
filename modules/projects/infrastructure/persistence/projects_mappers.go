package persistence

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence/models"
)

func ToDomainTask(dbTask *models.Task) (*task.Task, error) {
	id, err := uuid.Parse(dbTask.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := uuid.Parse(dbTask.ProjectID)
	if err != nil {
		return nil, err
	}

	options := []task.Option{
		task.WithID(id),
		task.WithStatus(task.Status(dbTask.Status)),
		task.WithPriority(task.Priority(dbTask.Priority)),
		task.WithDescription(dbTask.Description.String),
		task.WithAssigneeName(dbTask.AssigneeName.String),
		task.WithExternalReferenceID(dbTask.ExternalReferenceID.String),
		task.WithNotes(dbTask.Notes.String),
		task.WithStartDate(nullTimePtr(dbTask.StartDate)),
		task.WithDueDate(nullTimePtr(dbTask.DueDate)),
		task.WithCompletedAt(nullTimePtr(dbTask.CompletedAt)),
		task.WithDurationDays(nullInt32Ptr(dbTask.DurationDays)),
		task.WithPercentComplete(nullInt32Ptr(dbTask.PercentComplete)),
		task.WithCreatedAt(dbTask.CreatedAt),
		task.WithUpdatedAt(dbTask.UpdatedAt),
	}

	return task.New(projectID, dbTask.Title, options...), nil
}

func ToDBTask(entity *task.Task) *models.Task {
	return &models.Task{
		ID:                  entity.ID().String(),
		ProjectID:           entity.ProjectID().String(),
		Title:               entity.Title(),
		Description:         valueToNullString(entity.Description()),
		Status:              string(entity.Status()),
		Priority:            string(entity.Priority()),
		AssigneeName:        valueToNullString(entity.AssigneeName()),
		StartDate:           timePtrToNullTime(entity.StartDate()),
		DueDate:             timePtrToNullTime(entity.DueDate()),
		CompletedAt:         timePtrToNullTime(entity.CompletedAt()),
		DurationDays:        intPtrToNullInt32(entity.DurationDays()),
		PercentComplete:     intPtrToNullInt32(entity.PercentComplete()),
		ExternalReferenceID: valueToNullString(entity.ExternalReferenceID()),
		Notes:               valueToNullString(entity.Notes()),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}
}

func ToDomainProject(dbProject *models.Project) (*project.Project, error) {
	id, err := uuid.Parse(dbProject.ID)
	if err != nil {
		return nil, err
	}
	return project.New(dbProject.Name,
		project.WithID(id),
		project.WithCreatedAt(dbProject.CreatedAt),
		project.WithUpdatedAt(dbProject.UpdatedAt),
	), nil
}

func ToDBProject(entity *project.Project) *models.Project {
	return &models.Project{
		ID:        entity.ID().String(),
		Name:      entity.Name(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func valueToNullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func timePtrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullInt32Ptr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func intPtrToNullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}
