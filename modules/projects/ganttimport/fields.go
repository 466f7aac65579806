package ganttimport

// SystemField is the closed set of targets a spreadsheet column can be
// mapped to. FieldPredecessors is accepted in the mapping UI but never
// consumed by validation or reconciliation (read-only, reserved for a
// future dependency import).
type SystemField string

const (
	FieldIgnore        SystemField = "ignore"
	FieldTaskName      SystemField = "task_name"
	FieldPlannedStart  SystemField = "planned_start_date"
	FieldPlannedEnd    SystemField = "planned_end_date"
	FieldDuration      SystemField = "duration"
	FieldPercent       SystemField = "percent_complete"
	FieldStatus        SystemField = "status"
	FieldTaskIDWBS     SystemField = "task_id_wbs"
	FieldPredecessors  SystemField = "predecessors"
	FieldMilestoneLink SystemField = "milestone_link"
	FieldNotes         SystemField = "notes"
	FieldAssignee      SystemField = "assignee"
)

// FieldOption pairs a mappable field with its Hebrew dropdown label.
type FieldOption struct {
	Value SystemField `json:"value"`
	Label string      `json:"label"`
}

// FieldOptions is the fixed list shown in the column-mapping step, in the
// order the wizard renders it. Required fields are marked in the label.
var FieldOptions = []FieldOption{
	{Value: FieldIgnore, Label: "התעלם"},
	{Value: FieldTaskName, Label: "שם משימה (חובה)"},
	{Value: FieldPlannedStart, Label: "תאריך התחלה מתוכנן (חובה)"},
	{Value: FieldPlannedEnd, Label: "תאריך סיום מתוכנן (חובה)"},
	{Value: FieldStatus, Label: "מצב פעילות (אופציונלי)"},
	{Value: FieldDuration, Label: "משך (אופציונלי)"},
	{Value: FieldPredecessors, Label: "תלות (קריאה בלבד)"},
	{Value: FieldTaskIDWBS, Label: "רמת חלוקה / WBS (אופציונלי)"},
	{Value: FieldNotes, Label: "הערות (אופציונלי)"},
	{Value: FieldPercent, Label: "% התקדמות (אם קיים)"},
	{Value: FieldAssignee, Label: "אחראי (אם קיים)"},
	{Value: FieldMilestoneLink, Label: "אבן דרך / ציון דרך (אופציונלי)"},
}

// ValidField reports whether f is one of the mappable targets.
func ValidField(f SystemField) bool {
	for _, opt := range FieldOptions {
		if opt.Value == f {
			return true
		}
	}
	return false
}
