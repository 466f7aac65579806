package localstore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence"
)

type ProjectRepository struct {
	store *Store
}

func NewProjectRepository(store *Store) project.Repository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) GetAll(_ context.Context) ([]*project.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.read()
	if err != nil {
		return nil, err
	}
	projects := make([]*project.Project, 0, len(doc.Projects))
	for i := range doc.Projects {
		entity, err := projectFromRecord(&doc.Projects[i])
		if err != nil {
			return nil, err
		}
		projects = append(projects, entity)
	}
	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	projects, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, entity := range projects {
		if entity.ID() == id {
			return entity, nil
		}
	}
	return nil, persistence.ErrProjectNotFound
}

func (r *ProjectRepository) Create(_ context.Context, entity *project.Project) (*project.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.read()
	if err != nil {
		return nil, err
	}
	doc.Projects = append(doc.Projects, projectToRecord(entity))
	if err := r.store.write(doc); err != nil {
		return nil, err
	}
	return entity, nil
}

func projectToRecord(entity *project.Project) projectRecord {
	return projectRecord{
		ID:        entity.ID().String(),
		Name:      entity.Name(),
		CreatedAt: entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt: entity.UpdatedAt().Format(time.RFC3339),
	}
}

func projectFromRecord(record *projectRecord) (*project.Project, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid project id %q", record.ID)
	}
	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid created_at %q", record.CreatedAt)
	}
	updatedAt, err := time.Parse(time.RFC3339, record.UpdatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid updated_at %q", record.UpdatedAt)
	}
	return project.New(record.Name,
		project.WithID(id),
		project.WithCreatedAt(createdAt),
		project.WithUpdatedAt(updatedAt),
	), nil
}
