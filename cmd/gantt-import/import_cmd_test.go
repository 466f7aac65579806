package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
)

func TestParseMappingFlag(t *testing.T) {
	t.Parallel()

	got, err := parseMappingFlag("task_name=Task, planned_start_date=Start,planned_end_date=End")
	require.NoError(t, err)
	assert.Equal(t, map[string]ganttimport.SystemField{
		"Task":  ganttimport.FieldTaskName,
		"Start": ganttimport.FieldPlannedStart,
		"End":   ganttimport.FieldPlannedEnd,
	}, got)
}

func TestParseMappingFlag_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"Missing_Column", "task_name="},
		{"No_Separator", "task_name"},
		{"Unknown_Field", "bogus=Col"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseMappingFlag(tc.raw)
			require.Error(t, err)
		})
	}
}

func TestApplyMappingFlag(t *testing.T) {
	t.Parallel()

	seeded := []ganttimport.ColumnMapping{
		{ColumnIndex: 0, ColumnName: "Task", MappedTo: ganttimport.FieldIgnore},
		{ColumnIndex: 1, ColumnName: "Start", MappedTo: ganttimport.FieldIgnore},
	}

	mappings, err := applyMappingFlag(seeded, map[string]ganttimport.SystemField{
		"Task": ganttimport.FieldTaskName,
	})
	require.NoError(t, err)
	assert.Equal(t, ganttimport.FieldTaskName, mappings[0].MappedTo)
	assert.Equal(t, ganttimport.FieldIgnore, mappings[1].MappedTo)
	// seeded input is untouched
	assert.Equal(t, ganttimport.FieldIgnore, seeded[0].MappedTo)
}

func TestApplyMappingFlag_UnknownColumn(t *testing.T) {
	t.Parallel()

	seeded := []ganttimport.ColumnMapping{{ColumnName: "Task"}}
	_, err := applyMappingFlag(seeded, map[string]ganttimport.SystemField{
		"Missing": ganttimport.FieldTaskName,
	})
	require.Error(t, err)
}
