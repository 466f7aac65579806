package ganttimport

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
)

// Report is the terminal tally of an import run. Created is serialized as
// "success" to match the wizard's summary payload.
type Report struct {
	Created int `json:"success"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// Reconcile merges the importable rows into the full task collection and
// returns the mutated collection plus the run tally. allTasks spans every
// project; matching is scoped to projectID. Rows with validation errors are
// skipped and pre-counted as errors. A failure while applying a single row
// is isolated: it increments the error tally and the batch continues.
func Reconcile(projectID uuid.UUID, rows []ValidatedRow, allTasks []*task.Task) ([]*task.Task, Report) {
	var report Report

	// Matching runs against the project's tasks as they existed when the
	// commit started; tasks created by earlier rows of the same run are
	// not match candidates.
	projectTasks := make([]*task.Task, 0)
	for _, t := range allTasks {
		if t.ProjectID() == projectID {
			projectTasks = append(projectTasks, t)
		}
	}

	for i := range rows {
		row := &rows[i]
		if !row.Valid() {
			report.Errors++
			continue
		}

		created, err := applyRow(projectID, row, projectTasks, &allTasks)
		if err != nil {
			report.Errors++
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	return allTasks, report
}

// applyRow resolves one row to an update of an existing task or a freshly
// created one. Returns created=true on create.
func applyRow(projectID uuid.UUID, row *ValidatedRow, projectTasks []*task.Task, allTasks *[]*task.Task) (bool, error) {
	// The synthesized key is only used for matching on re-import; it is
	// stored as the external reference but never written back as a task id.
	externalReferenceID := row.TaskID
	if externalReferenceID == "" {
		externalReferenceID = row.TaskName + "|" + row.PlannedStart
	}

	status := deriveStatus(row)

	notes := mergeNotes(row)

	start, ok := FromISO(row.PlannedStart)
	if !ok {
		return false, errors.Errorf("row %q: start date %q is not a normalized date", row.TaskName, row.PlannedStart)
	}
	end, ok := FromISO(row.PlannedEnd)
	if !ok {
		return false, errors.Errorf("row %q: end date %q is not a normalized date", row.TaskName, row.PlannedEnd)
	}

	existing := matchExisting(row, projectTasks)
	if existing != nil {
		existing.SetTitle(row.TaskName)
		existing.SetStatus(status)
		existing.SetStartDate(&start)
		existing.SetDueDate(&end)
		existing.SetDurationDays(row.Duration)
		existing.SetPercentComplete(row.PercentComplete)
		existing.SetExternalReferenceID(externalReferenceID)
		existing.SetAssigneeName(row.Assignee)
		existing.SetNotes(notes)
		return false, nil
	}

	created := task.New(projectID, row.TaskName,
		task.WithStatus(status),
		task.WithStartDate(&start),
		task.WithDueDate(&end),
		task.WithDurationDays(row.Duration),
		task.WithPercentComplete(row.PercentComplete),
		task.WithExternalReferenceID(externalReferenceID),
		task.WithAssigneeName(row.Assignee),
		task.WithNotes(notes),
	)
	*allTasks = append(*allTasks, created)
	return true, nil
}

// matchExisting resolves the row to an already-imported task: by external
// reference id when the sheet supplied one, falling back to the
// title + start-date composite key. Both comparisons are exact.
func matchExisting(row *ValidatedRow, projectTasks []*task.Task) *task.Task {
	if row.TaskID != "" {
		for _, t := range projectTasks {
			if t.ExternalReferenceID() == row.TaskID {
				return t
			}
		}
	}
	for _, t := range projectTasks {
		if t.Title() == row.TaskName && t.StartDateISO() == row.PlannedStart {
			return t
		}
	}
	return nil
}

// deriveStatus prefers the row's explicit status; otherwise it is derived
// from percent-complete (0 → Backlog, 1..99 → In Progress, 100 → Done),
// defaulting to Backlog when neither is available.
func deriveStatus(row *ValidatedRow) task.Status {
	if row.Status != "" {
		return row.Status
	}
	if row.PercentComplete != nil {
		switch p := *row.PercentComplete; {
		case p == 0:
			return task.StatusBacklog
		case p >= 1 && p < 100:
			return task.StatusInProgress
		case p == 100:
			return task.StatusDone
		}
	}
	return task.StatusBacklog
}

// mergeNotes concatenates the free-text notes and the milestone line, each
// on its own line, omitting empty parts.
func mergeNotes(row *ValidatedRow) string {
	parts := make([]string, 0, 2)
	if row.Notes != "" {
		parts = append(parts, row.Notes)
	}
	if row.MilestoneLink != "" {
		parts = append(parts, notesMilestonePrefix+row.MilestoneLink)
	}
	return strings.Join(parts, "\n")
}
