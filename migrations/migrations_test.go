package migrations_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anprojects/anproyektim/migrations"
)

func TestBaseline_HasGooseMarkers(t *testing.T) {
	t.Parallel()

	raw, err := migrations.FS.ReadFile("projects/00001_projects_baseline.sql")
	require.NoError(t, err)

	sql := string(raw)
	require.Contains(t, sql, "-- +goose Up")
	require.Contains(t, sql, "-- +goose Down")
	require.Less(t, strings.Index(sql, "-- +goose Up"), strings.Index(sql, "-- +goose Down"))
}

// The repositories insert and scan these columns by name; the baseline DDL
// must declare every one of them.
func TestBaseline_CoversRepositoryColumns(t *testing.T) {
	t.Parallel()

	raw, err := migrations.FS.ReadFile("projects/00001_projects_baseline.sql")
	require.NoError(t, err)
	sql := string(raw)

	up := sql[:strings.Index(sql, "-- +goose Down")]

	taskColumns := []string{
		"id", "project_id", "title", "description", "status", "priority",
		"assignee_name", "start_date", "due_date", "completed_at",
		"duration_days", "percent_complete", "external_reference_id",
		"notes", "created_at", "updated_at",
	}
	for _, column := range taskColumns {
		require.Contains(t, up, column, "tasks column %q missing from baseline", column)
	}

	for _, column := range []string{"id", "name", "created_at", "updated_at"} {
		require.Contains(t, up, column, "projects column %q missing from baseline", column)
	}

	require.Contains(t, up, "CREATE TABLE projects")
	require.Contains(t, up, "CREATE TABLE tasks")
	require.Contains(t, up, "REFERENCES projects (id) ON DELETE CASCADE")
}

func TestBaseline_DownDropsBothTables(t *testing.T) {
	t.Parallel()

	raw, err := migrations.FS.ReadFile("projects/00001_projects_baseline.sql")
	require.NoError(t, err)
	sql := string(raw)

	down := sql[strings.Index(sql, "-- +goose Down"):]
	require.Contains(t, down, "DROP TABLE tasks")
	require.Contains(t, down, "DROP TABLE projects")
	// tasks references projects, so it has to go first.
	require.Less(t, strings.Index(down, "DROP TABLE tasks"), strings.Index(down, "DROP TABLE projects"))
}
