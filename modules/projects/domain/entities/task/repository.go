package task

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the whole-collection task store contract the Gantt import
// pipeline relies on: the collection is read once at the start of a commit
// and written back once at the end. SaveAll replaces the full snapshot
// (all projects), so the last writer wins.
type Repository interface {
	GetAll(ctx context.Context) ([]*Task, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*Task, error)
	SaveAll(ctx context.Context, tasks []*Task) error
}
