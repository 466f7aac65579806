package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence/models"
	"github.com/anprojects/anproyektim/pkg/composables"
)

var (
	ErrProjectNotFound = fmt.Errorf("project not found")
)

const (
	projectFindQuery = `
		SELECT id, name, created_at, updated_at
		FROM projects`

	projectInsertQuery = `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
)

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*project.Project, error) {
	return r.queryProjects(ctx, projectFindQuery+" ORDER BY created_at, id")
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	projects, err := r.queryProjects(ctx, projectFindQuery+" WHERE id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}
	return projects[0], nil
}

func (r *ProjectRepository) Create(ctx context.Context, entity *project.Project) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	dbProject := ToDBProject(entity)
	if _, err := tx.Exec(ctx, projectInsertQuery,
		dbProject.ID,
		dbProject.Name,
		dbProject.CreatedAt,
		dbProject.UpdatedAt,
	); err != nil {
		return nil, errors.Wrapf(err, "failed to insert project %s", dbProject.ID)
	}
	return r.GetByID(ctx, entity.ID())
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query projects")
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		var dbProject models.Project
		if err := rows.Scan(
			&dbProject.ID,
			&dbProject.Name,
			&dbProject.CreatedAt,
			&dbProject.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan project row")
		}

		entity, err := ToDomainProject(&dbProject)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map project row")
		}
		projects = append(projects, entity)
	}

	return projects, rows.Err()
}
