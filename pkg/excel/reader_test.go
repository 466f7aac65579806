package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/anprojects/anproyektim/pkg/excel"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestAllowedExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, excel.AllowedExtension("schedule.xlsx"))
	assert.True(t, excel.AllowedExtension("schedule.xls"))
	assert.True(t, excel.AllowedExtension("SCHEDULE.XLSX"))
	assert.False(t, excel.AllowedExtension("schedule.csv"))
	assert.False(t, excel.AllowedExtension("schedule"))
	assert.False(t, excel.AllowedExtension("xlsx"))
}

func TestReadSheet_HeadersAndRows(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]interface{}{
		{"  Task ", "Start", "End"},
		{"Dig", "01/03/2024", "02/03/2024"},
		{"Pour"},
	})

	sheet, err := excel.ReadSheet(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Task", "Start", "End"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"Dig", "01/03/2024", "02/03/2024"}, sheet.Rows[0])
	// short rows are padded to the header width
	assert.Equal(t, []string{"Pour", "", ""}, sheet.Rows[1])
}

func TestReadSheet_HeaderOnly(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]interface{}{{"Task"}})

	sheet, err := excel.ReadSheet(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Task"}, sheet.Headers)
	assert.Empty(t, sheet.Rows)
}

func TestReadSheet_EmptyWorkbook(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = excel.ReadSheet(buf)
	require.ErrorIs(t, err, excel.ErrEmptyWorkbook)
}

func TestReadSheet_Garbage(t *testing.T) {
	t.Parallel()

	_, err := excel.ReadSheet(bytes.NewReader([]byte("not a workbook")))
	require.ErrorIs(t, err, excel.ErrUnreadableWorkbook)
}
