package ganttimport

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
)

// ValidatedRow is the strongly-typed result of validating one spreadsheet
// row. Dates are normalized ISO "YYYY-MM-DD" strings. A row with a non-empty
// Errors list is excluded from the commit; Warnings never block.
type ValidatedRow struct {
	TaskName        string      `json:"taskName"`
	PlannedStart    string      `json:"plannedStart"`
	PlannedEnd      string      `json:"plannedEnd"`
	Duration        *int        `json:"duration,omitempty"`
	PercentComplete *int        `json:"percentComplete,omitempty"`
	MilestoneLink   string      `json:"milestoneLink,omitempty"`
	TaskID          string      `json:"taskId,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Assignee        string      `json:"assignee,omitempty"`
	Status          task.Status `json:"status,omitempty"`
	Errors          []string    `json:"errors"`
	Warnings        []string    `json:"warnings"`
}

// Valid reports whether the row is importable.
func (r *ValidatedRow) Valid() bool {
	return len(r.Errors) == 0
}

type statusTokens struct {
	status task.Status
	tokens []string
}

// Ordered: the first status whose token substring-matches wins. Both the
// English and the Hebrew client vocabularies are recognized.
var statusTokenTable = []statusTokens{
	{task.StatusBacklog, []string{"backlog", "ממתין"}},
	{task.StatusReady, []string{"ready", "מוכן"}},
	{task.StatusInProgress, []string{"in progress", "ביצוע", "בביצוע"}},
	{task.StatusBlocked, []string{"blocked", "חסום"}},
	{task.StatusDone, []string{"done", "הושלם"}},
	{task.StatusCanceled, []string{"canceled", "בוטל"}},
}

// ParseStatus maps a raw cell value to a task status by case-insensitive
// substring match. No match is not an error; the status is simply unset.
func ParseStatus(value string) (task.Status, bool) {
	lower := strings.ToLower(value)
	for _, entry := range statusTokenTable {
		for _, token := range entry.tokens {
			if strings.Contains(lower, token) {
				return entry.status, true
			}
		}
	}
	return "", false
}

// ValidateRows applies the active mappings to every raw row, in column
// order, and runs the validation rules. The output has the same length and
// order as the input. After per-row validation, duplicate task ids across
// the sheet are flagged with a non-blocking warning on every affected row.
func ValidateRows(rows []RawRow, mappings []ColumnMapping) []ValidatedRow {
	validated := make([]ValidatedRow, 0, len(rows))
	for _, row := range rows {
		validated = append(validated, validateRow(row, mappings))
	}

	flagDuplicateTaskIDs(validated)
	return validated
}

func validateRow(row RawRow, mappings []ColumnMapping) ValidatedRow {
	result := ValidatedRow{
		Errors:   []string{},
		Warnings: []string{},
	}

	// Column order; when two columns map to the same field the later one wins.
	for _, mapping := range mappings {
		if mapping.MappedTo == FieldIgnore {
			continue
		}

		value := strings.TrimSpace(row[mapping.ColumnName])

		switch mapping.MappedTo {
		case FieldTaskName:
			result.TaskName = value
		case FieldPlannedStart:
			result.PlannedStart = value
		case FieldPlannedEnd:
			result.PlannedEnd = value
		case FieldDuration:
			if d, ok := parseFinite(value); ok && d > 0 {
				rounded := int(math.Round(d))
				result.Duration = &rounded
			}
		case FieldPercent:
			if p, ok := parseFinite(value); ok && p >= 0 && p <= 100 {
				rounded := int(math.Round(p))
				result.PercentComplete = &rounded
			}
		case FieldTaskIDWBS:
			result.TaskID = value
		case FieldMilestoneLink:
			result.MilestoneLink = value
		case FieldNotes:
			result.Notes = value
		case FieldAssignee:
			result.Assignee = value
		case FieldStatus:
			if status, ok := ParseStatus(value); ok {
				result.Status = status
			}
		}
	}

	if result.TaskName == "" {
		result.Errors = append(result.Errors, msgTaskNameMissing)
	}

	startValid := false
	if result.PlannedStart == "" {
		result.Errors = append(result.Errors, msgStartMissing)
	} else if iso, ok := ParseDate(result.PlannedStart); ok {
		result.PlannedStart = iso
		startValid = true
	} else {
		result.Errors = append(result.Errors, msgStartInvalid)
	}

	endValid := false
	if result.PlannedEnd == "" {
		result.Errors = append(result.Errors, msgEndMissing)
	} else if iso, ok := ParseDate(result.PlannedEnd); ok {
		result.PlannedEnd = iso
		endValid = true
	} else {
		result.Errors = append(result.Errors, msgEndInvalid)
	}

	// Lexicographic comparison is date order for normalized ISO dates.
	if startValid && endValid && result.PlannedStart > result.PlannedEnd {
		result.Warnings = append(result.Warnings, msgEndBeforeStart)
	}

	return result
}

func flagDuplicateTaskIDs(rows []ValidatedRow) {
	byID := make(map[string][]int)
	for i := range rows {
		if rows[i].TaskID != "" {
			byID[rows[i].TaskID] = append(byID[rows[i].TaskID], i)
		}
	}
	for id, indices := range byID {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			rows[i].Warnings = append(rows[i].Warnings, fmt.Sprintf(msgDuplicateTaskID, id))
		}
	}
}

func parseFinite(value string) (float64, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
