package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence/localstore"
	"github.com/anprojects/anproyektim/modules/projects/presentation/controllers"
	"github.com/anprojects/anproyektim/modules/projects/services"
	"github.com/anprojects/anproyektim/pkg/eventbus"
	"github.com/anprojects/anproyektim/pkg/middleware"
)

type wizardEnv struct {
	router  *mux.Router
	project *project.Project
}

func newWizardEnv(t *testing.T) *wizardEnv {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	store := localstore.NewStore(filepath.Join(t.TempDir(), "data.json"))
	tasks := localstore.NewTaskRepository(store)
	projects := localstore.NewProjectRepository(store)
	bus := eventbus.NewEventPublisher(log)

	proj, err := projects.Create(t.Context(), project.New("Wizard"))
	require.NoError(t, err)

	router := mux.NewRouter()
	router.Use(middleware.WithLogger(log))

	importService := services.NewGanttImportService(tasks, projects, bus)
	controllers.NewGanttImportController(importService).Register(router)
	controllers.NewProjectsController(
		services.NewProjectService(projects),
		services.NewTaskService(tasks),
	).Register(router)

	return &wizardEnv{router: router, project: proj}
}

func (e *wizardEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func workbookUpload(t *testing.T, filename string, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	content, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func (e *wizardEnv) parse(t *testing.T, rows [][]interface{}) (string, []ganttimport.ColumnMapping) {
	t.Helper()

	body, contentType := workbookUpload(t, "schedule.xlsx", rows)
	req := httptest.NewRequest(http.MethodPost, e.wizardPath("parse"), body)
	req.Header.Set("Content-Type", contentType)
	rec := e.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token    string                      `json:"token"`
		Mappings []ganttimport.ColumnMapping `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.Mappings
}

func (e *wizardEnv) wizardPath(step string) string {
	return fmt.Sprintf("/projects/%s/gantt-import/%s", e.project.ID(), step)
}

func mapByName(mappings []ganttimport.ColumnMapping, fields map[string]ganttimport.SystemField) []ganttimport.ColumnMapping {
	out := make([]ganttimport.ColumnMapping, len(mappings))
	copy(out, mappings)
	for i := range out {
		if field, ok := fields[out[i].ColumnName]; ok {
			out[i].MappedTo = field
		}
	}
	return out
}

func postJSON(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGanttImportWizard_FullFlow(t *testing.T) {
	t.Parallel()

	env := newWizardEnv(t)
	token, seeded := env.parse(t, [][]interface{}{
		{"Task", "Start", "End", "% Done"},
		{"Pour foundation", "01/03/2024", "15/03/2024", "100"},
	})

	mappings := mapByName(seeded, map[string]ganttimport.SystemField{
		"Task":   ganttimport.FieldTaskName,
		"Start":  ganttimport.FieldPlannedStart,
		"End":    ganttimport.FieldPlannedEnd,
		"% Done": ganttimport.FieldPercent,
	})

	payload := map[string]any{"token": token, "mappings": mappings}

	rec := env.do(t, postJSON(t, env.wizardPath("preview"), payload))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview struct {
		Rows   []ganttimport.ValidatedRow `json:"rows"`
		Total  int                        `json:"total"`
		Valid  int                        `json:"valid"`
		Errors int                        `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, 1, preview.Total)
	assert.Equal(t, 1, preview.Valid)
	assert.Equal(t, 0, preview.Errors)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "2024-03-01", preview.Rows[0].PlannedStart)

	rec = env.do(t, postJSON(t, env.wizardPath("commit"), payload))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var commit struct {
		Success int    `json:"success"`
		Updated int    `json:"updated"`
		Errors  int    `json:"errors"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commit))
	assert.Equal(t, 1, commit.Success)
	assert.Equal(t, 0, commit.Updated)
	assert.Equal(t, 0, commit.Errors)
	assert.Equal(t, ganttimport.MsgImportDone, commit.Message)

	// The session is single use.
	rec = env.do(t, postJSON(t, env.wizardPath("commit"), payload))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%s/tasks", env.project.ID()), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pour foundation", tasks[0]["title"])
	assert.Equal(t, "Done", tasks[0]["status"])
	assert.Equal(t, "2024-03-01", tasks[0]["start_date"])
}

func TestGanttImportWizard_RejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	env := newWizardEnv(t)
	body, contentType := workbookUpload(t, "schedule.csv", [][]interface{}{
		{"Task"},
		{"Dig"},
	})
	req := httptest.NewRequest(http.MethodPost, env.wizardPath("parse"), body)
	req.Header.Set("Content-Type", contentType)

	rec := env.do(t, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ganttimport.MsgUnsupportedFile, resp.Message)
}

func TestGanttImportWizard_PreviewWithoutRequiredMapping(t *testing.T) {
	t.Parallel()

	env := newWizardEnv(t)
	token, seeded := env.parse(t, [][]interface{}{
		{"Task", "Start", "End"},
		{"Dig", "01/03/2024", "02/03/2024"},
	})

	mappings := mapByName(seeded, map[string]ganttimport.SystemField{
		"Task": ganttimport.FieldTaskName,
	})

	rec := env.do(t, postJSON(t, env.wizardPath("preview"), map[string]any{"token": token, "mappings": mappings}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ganttimport.MsgMappingGate, resp.Message)
}

func TestGanttImportWizard_PreviewCapsReturnedRows(t *testing.T) {
	t.Parallel()

	env := newWizardEnv(t)
	sheet := [][]interface{}{{"Task", "Start", "End"}}
	for i := 0; i < 12; i++ {
		sheet = append(sheet, []interface{}{fmt.Sprintf("Task %d", i), "01/03/2024", "02/03/2024"})
	}
	token, seeded := env.parse(t, sheet)

	mappings := mapByName(seeded, map[string]ganttimport.SystemField{
		"Task":  ganttimport.FieldTaskName,
		"Start": ganttimport.FieldPlannedStart,
		"End":   ganttimport.FieldPlannedEnd,
	})

	rec := env.do(t, postJSON(t, env.wizardPath("preview"), map[string]any{"token": token, "mappings": mappings}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var preview struct {
		Rows  []ganttimport.ValidatedRow `json:"rows"`
		Total int                        `json:"total"`
		Valid int                        `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Len(t, preview.Rows, 10)
	assert.Equal(t, 12, preview.Total)
	assert.Equal(t, 12, preview.Valid)
}

func TestGanttImportWizard_Meta(t *testing.T) {
	t.Parallel()

	env := newWizardEnv(t)
	rec := env.do(t, httptest.NewRequest(http.MethodGet, env.wizardPath("meta"), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var meta struct {
		Fields []ganttimport.FieldOption `json:"fields"`
		Languages []struct {
			Code string `json:"code"`
			RTL  bool   `json:"rtl"`
		} `json:"languages"`
		DefaultLanguage string `json:"defaultLanguage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, ganttimport.FieldOptions, meta.Fields)
	assert.Equal(t, "he", meta.DefaultLanguage)
	require.NotEmpty(t, meta.Languages)
	assert.True(t, meta.Languages[0].RTL)
}

func TestGanttImportWizard_UnknownSessionToken(t *testing.T) {
	t.Parallel()

	env := newWizardEnv(t)
	rec := env.do(t, postJSON(t, env.wizardPath("preview"), map[string]any{"token": "missing", "mappings": nil}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
