package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence"
	"github.com/anprojects/anproyektim/modules/projects/services"
	"github.com/anprojects/anproyektim/pkg/httpapi"
	"github.com/anprojects/anproyektim/pkg/middleware"
	"github.com/go-faster/errors"
)

// ProjectsController serves the read side the web client renders the board
// from: project list and per-project task list.
type ProjectsController struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
	basePath       string
}

func NewProjectsController(projectService *services.ProjectService, taskService *services.TaskService) *ProjectsController {
	return &ProjectsController{
		projectService: projectService,
		taskService:    taskService,
		basePath:       "/projects",
	}
}

func (c *ProjectsController) Key() string {
	return c.basePath
}

func (c *ProjectsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.WithTransaction())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{projectID}/tasks", c.Tasks).Methods(http.MethodGet)
}

type projectView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type taskView struct {
	ID                  string `json:"id"`
	ProjectID           string `json:"project_id"`
	Title               string `json:"title"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
	AssigneeName        string `json:"assignee_name,omitempty"`
	StartDate           string `json:"start_date,omitempty"`
	DueDate             string `json:"due_date,omitempty"`
	DurationDays        *int   `json:"duration_days,omitempty"`
	PercentComplete     *int   `json:"percent_complete,omitempty"`
	ExternalReferenceID string `json:"external_reference_id,omitempty"`
	Notes               string `json:"notes,omitempty"`
}

func (c *ProjectsController) List(w http.ResponseWriter, r *http.Request) {
	projects, err := c.projectService.GetAll(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PROJECTS_UNAVAILABLE", "failed to load projects", nil)
		return
	}
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, toProjectView(p))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, views)
}

func (c *ProjectsController) Tasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["projectID"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PROJECT_ID", "invalid project id", nil)
		return
	}
	if _, err := c.projectService.GetByID(r.Context(), projectID); err != nil {
		if errors.Is(err, persistence.ErrProjectNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PROJECTS_UNAVAILABLE", "failed to load project", nil)
		return
	}

	tasks, err := c.taskService.GetByProjectID(r.Context(), projectID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "TASKS_UNAVAILABLE", "failed to load tasks", nil)
		return
	}
	views := make([]taskView, 0, len(tasks))
	for _, entity := range tasks {
		views = append(views, toTaskView(entity))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, views)
}

func toProjectView(p *project.Project) projectView {
	return projectView{ID: p.ID().String(), Name: p.Name()}
}

func toTaskView(entity *task.Task) taskView {
	return taskView{
		ID:                  entity.ID().String(),
		ProjectID:           entity.ProjectID().String(),
		Title:               entity.Title(),
		Status:              string(entity.Status()),
		Priority:            string(entity.Priority()),
		AssigneeName:        entity.AssigneeName(),
		StartDate:           entity.StartDateISO(),
		DueDate:             entity.DueDateISO(),
		DurationDays:        entity.DurationDays(),
		PercentComplete:     entity.PercentComplete(),
		ExternalReferenceID: entity.ExternalReferenceID(),
		Notes:               entity.Notes(),
	}
}
