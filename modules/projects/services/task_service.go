package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
)

type TaskService struct {
	repo task.Repository
}

func NewTaskService(repo task.Repository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) GetAll(ctx context.Context) ([]*task.Task, error) {
	return s.repo.GetAll(ctx)
}

func (s *TaskService) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*task.Task, error) {
	return s.repo.GetByProjectID(ctx, projectID)
}
