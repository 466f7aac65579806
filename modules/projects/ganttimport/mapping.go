package ganttimport

import (
	"github.com/anprojects/anproyektim/pkg/excel"
)

const (
	sampleRowLimit       = 20
	sampleValueMaxLength = 50
)

// ColumnMapping binds one spreadsheet column to a system field. The wizard
// seeds every column with FieldIgnore and the user adjusts MappedTo.
type ColumnMapping struct {
	ColumnIndex int         `json:"columnIndex"`
	ColumnName  string      `json:"columnName"`
	SampleValue string      `json:"sampleValue"`
	MappedTo    SystemField `json:"mappedTo"`
}

// RawRow is one spreadsheet data row keyed by header name. When two columns
// share a header the right-most one wins, matching how the web client built
// its row objects.
type RawRow map[string]string

// Ingestion is the output of the file-ingestion step: the header row, the
// seeded column mappings and up to 20 sample rows for the mapping UI.
type Ingestion struct {
	Headers  []string        `json:"headers"`
	Mappings []ColumnMapping `json:"mappings"`
	Sample   []RawRow        `json:"sample"`
}

// Ingest converts a decoded sheet into the mapping step's input. Sample
// values are taken from the first data row and truncated to 50 characters.
func Ingest(sheet *excel.Sheet) *Ingestion {
	sample := Rows(sheet)
	if len(sample) > sampleRowLimit {
		sample = sample[:sampleRowLimit]
	}

	mappings := make([]ColumnMapping, 0, len(sheet.Headers))
	for idx, header := range sheet.Headers {
		sampleValue := ""
		if len(sample) > 0 {
			sampleValue = sample[0][header]
		}
		// Truncate on runes, not bytes; Hebrew samples are multi-byte.
		if runes := []rune(sampleValue); len(runes) > sampleValueMaxLength {
			sampleValue = string(runes[:sampleValueMaxLength])
		}
		mappings = append(mappings, ColumnMapping{
			ColumnIndex: idx,
			ColumnName:  header,
			SampleValue: sampleValue,
			MappedTo:    FieldIgnore,
		})
	}

	return &Ingestion{
		Headers:  sheet.Headers,
		Mappings: mappings,
		Sample:   sample,
	}
}

// Rows converts every data row of the sheet into a RawRow keyed by header.
func Rows(sheet *excel.Sheet) []RawRow {
	rows := make([]RawRow, 0, len(sheet.Rows))
	for _, cells := range sheet.Rows {
		row := make(RawRow, len(sheet.Headers))
		for i, header := range sheet.Headers {
			row[header] = cells[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// CanProceed is the mapping gate: at least one column must map to each of
// task_name, planned_start_date and planned_end_date. Multiple columns may
// share a target; the last one in column order wins at validation time.
func CanProceed(mappings []ColumnMapping) bool {
	hasTaskName := false
	hasStartDate := false
	hasEndDate := false
	for _, m := range mappings {
		switch m.MappedTo {
		case FieldTaskName:
			hasTaskName = true
		case FieldPlannedStart:
			hasStartDate = true
		case FieldPlannedEnd:
			hasEndDate = true
		}
	}
	return hasTaskName && hasStartDate && hasEndDate
}
