package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
	"github.com/anprojects/anproyektim/pkg/composables"
	"github.com/anprojects/anproyektim/pkg/eventbus"
	"github.com/anprojects/anproyektim/pkg/excel"
	"github.com/anprojects/anproyektim/pkg/serrors"
)

var (
	ErrMappingIncomplete = serrors.NewError(
		"GANTT_MAPPING_INCOMPLETE",
		ganttimport.MsgMappingGate,
		"GanttImport.Errors.MappingIncomplete",
	)
	ErrNoImportableRows = serrors.NewError(
		"GANTT_NO_IMPORTABLE_ROWS",
		ganttimport.MsgNoValidRows,
		"GanttImport.Errors.NoImportableRows",
	)
)

// ImportCompletedEvent is published after a commit has been persisted.
type ImportCompletedEvent struct {
	ProjectID  uuid.UUID
	Report     ganttimport.Report
	FinishedAt time.Time
}

// GanttImportService drives the import wizard: parse the workbook, preview
// the mapped rows, commit the reconciled collection. Commit expects an
// ambient transaction on the context when the task repository is backed by
// PostgreSQL.
type GanttImportService struct {
	tasks     task.Repository
	projects  project.Repository
	publisher eventbus.EventBus
}

func NewGanttImportService(
	tasks task.Repository,
	projects project.Repository,
	publisher eventbus.EventBus,
) *GanttImportService {
	return &GanttImportService{
		tasks:     tasks,
		projects:  projects,
		publisher: publisher,
	}
}

// Parse decodes the uploaded workbook and seeds the column mapping. The
// returned rows are kept by the caller for the preview and commit stages.
func (s *GanttImportService) Parse(ctx context.Context, filename string, r io.Reader) (*ganttimport.Ingestion, []ganttimport.RawRow, error) {
	if !excel.AllowedExtension(filename) {
		return nil, nil, excel.ErrUnsupportedFile
	}

	sheet, err := excel.ReadSheet(r)
	if err != nil {
		return nil, nil, err
	}

	ingestion := ganttimport.Ingest(sheet)
	rows := ganttimport.Rows(sheet)

	composables.UseLogger(ctx).WithFields(map[string]interface{}{
		"filename": filename,
		"columns":  len(ingestion.Headers),
		"rows":     len(rows),
	}).Info("workbook parsed")

	return ingestion, rows, nil
}

// Preview validates and normalizes every row under the given mapping. It
// fails when the required fields are not all mapped.
func (s *GanttImportService) Preview(_ context.Context, rows []ganttimport.RawRow, mappings []ganttimport.ColumnMapping) ([]ganttimport.ValidatedRow, error) {
	if !ganttimport.CanProceed(mappings) {
		return nil, ErrMappingIncomplete
	}
	return ganttimport.ValidateRows(rows, mappings), nil
}

// Commit reconciles the validated rows into the project's tasks and writes
// the whole collection back. Row failures are tallied, not fatal; only an
// incomplete mapping or an empty importable set aborts the commit.
func (s *GanttImportService) Commit(
	ctx context.Context,
	projectID uuid.UUID,
	rows []ganttimport.RawRow,
	mappings []ganttimport.ColumnMapping,
) (ganttimport.Report, error) {
	if !ganttimport.CanProceed(mappings) {
		return ganttimport.Report{}, ErrMappingIncomplete
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return ganttimport.Report{}, err
	}

	validated := ganttimport.ValidateRows(rows, mappings)
	importable := 0
	for i := range validated {
		if validated[i].Valid() {
			importable++
		}
	}
	if importable == 0 {
		return ganttimport.Report{}, ErrNoImportableRows
	}

	allTasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return ganttimport.Report{}, err
	}

	merged, report := ganttimport.Reconcile(projectID, validated, allTasks)
	if err := s.tasks.SaveAll(ctx, merged); err != nil {
		return ganttimport.Report{}, err
	}

	s.publisher.Publish(ImportCompletedEvent{
		ProjectID:  projectID,
		Report:     report,
		FinishedAt: time.Now(),
	})

	composables.UseLogger(ctx).WithFields(map[string]interface{}{
		"project_id": projectID.String(),
		"created":    report.Created,
		"updated":    report.Updated,
		"errors":     report.Errors,
	}).Info("gantt import committed")

	return report, nil
}
