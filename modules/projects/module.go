package projects

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence/localstore"
	"github.com/anprojects/anproyektim/modules/projects/presentation/controllers"
	"github.com/anprojects/anproyektim/modules/projects/services"
	"github.com/anprojects/anproyektim/pkg/configuration"
	"github.com/anprojects/anproyektim/pkg/eventbus"
)

// Module bundles the projects feature: repositories picked by the
// configured backend, the services on top of them, and the HTTP surface.
type Module struct {
	Tasks    task.Repository
	Projects project.Repository
	Bus      eventbus.EventBus

	ImportService  *services.GanttImportService
	ProjectService *services.ProjectService
	TaskService    *services.TaskService
}

// NewModule wires repositories and services for the configured task-store
// backend. The PostgreSQL repositories expect a pool or transaction on the
// request context; providing it is the caller's concern.
func NewModule(conf *configuration.Configuration, logger *logrus.Logger) *Module {
	var (
		tasks    task.Repository
		projects project.Repository
	)
	if conf.Tasks.Backend == "local" {
		store := localstore.NewStore(conf.Tasks.LocalPath)
		tasks = localstore.NewTaskRepository(store)
		projects = localstore.NewProjectRepository(store)
	} else {
		tasks = persistence.NewTaskRepository()
		projects = persistence.NewProjectRepository()
	}

	bus := eventbus.NewEventPublisher(logger)
	return &Module{
		Tasks:          tasks,
		Projects:       projects,
		Bus:            bus,
		ImportService:  services.NewGanttImportService(tasks, projects, bus),
		ProjectService: services.NewProjectService(projects),
		TaskService:    services.NewTaskService(tasks),
	}
}

// Register mounts the module's controllers on the router.
func (m *Module) Register(r *mux.Router) {
	controllers.NewGanttImportController(m.ImportService).Register(r)
	controllers.NewProjectsController(m.ProjectService, m.TaskService).Register(r)
}
