package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_LoadsExistingFilesOnly(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "ANPROYEKTIM_TEST_ENV_LOAD=ok\n")

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	_ = os.Unsetenv("ANPROYEKTIM_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ok", os.Getenv("ANPROYEKTIM_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTasksOptions_Validate(t *testing.T) {
	t.Run("Postgres_Backend", func(t *testing.T) {
		opts := TasksOptions{Backend: "postgres"}
		assert.NoError(t, opts.Validate())
	})

	t.Run("Local_Backend_Requires_Path", func(t *testing.T) {
		opts := TasksOptions{Backend: "local", LocalPath: "  "}
		assert.Error(t, opts.Validate())

		opts.LocalPath = "./data/tasks.json"
		assert.NoError(t, opts.Validate())
	})

	t.Run("Unknown_Backend", func(t *testing.T) {
		opts := TasksOptions{Backend: "redis"}
		assert.Error(t, opts.Validate())
	})
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
