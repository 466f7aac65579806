package excel

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/anprojects/anproyektim/pkg/serrors"
)

var (
	ErrUnsupportedFile = serrors.NewError(
		"EXCEL_UNSUPPORTED_FILE",
		"unsupported file extension",
		"GanttImport.Errors.UnsupportedFile",
	)
	ErrEmptyWorkbook = serrors.NewError(
		"EXCEL_EMPTY_WORKBOOK",
		"workbook contains no rows",
		"GanttImport.Errors.EmptyWorkbook",
	)
	ErrUnreadableWorkbook = serrors.NewError(
		"EXCEL_UNREADABLE_WORKBOOK",
		"workbook could not be decoded",
		"GanttImport.Errors.UnreadableWorkbook",
	)
)

// Sheet is the decoded first worksheet of a workbook. Rows hold the raw cell
// text below the header row; every row is padded to len(Headers) so blank
// trailing cells read as "".
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// AllowedExtension reports whether the filename carries a supported
// spreadsheet extension (.xlsx or .xls, case-insensitive).
func AllowedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadSheet decodes the first worksheet into headers plus a grid of raw cell
// values. The first row is always treated as the header; header cells are
// trimmed. A workbook with zero rows yields ErrEmptyWorkbook.
func ReadSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableWorkbook, err.Error())
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableWorkbook, err.Error())
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	grid := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		grid = append(grid, cells)
	}

	return &Sheet{Headers: headers, Rows: grid}, nil
}
