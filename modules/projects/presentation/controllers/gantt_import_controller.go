package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence"
	"github.com/anprojects/anproyektim/modules/projects/services"
	"github.com/anprojects/anproyektim/pkg/composables"
	"github.com/anprojects/anproyektim/pkg/configuration"
	"github.com/anprojects/anproyektim/pkg/excel"
	"github.com/anprojects/anproyektim/pkg/httpapi"
	"github.com/anprojects/anproyektim/pkg/intl"
	"github.com/anprojects/anproyektim/pkg/middleware"
	"github.com/anprojects/anproyektim/pkg/serrors"
	"github.com/go-faster/errors"
)

// GanttImportController exposes the three-step import wizard under a
// project scope. Parse uploads and decodes the workbook, preview validates
// the candidate mapping, commit writes the reconciled task collection.
type GanttImportController struct {
	importService *services.GanttImportService
	sessions      *uploadSessionStore
	basePath      string
}

func NewGanttImportController(importService *services.GanttImportService) *GanttImportController {
	return &GanttImportController{
		importService: importService,
		sessions:      newUploadSessionStore(),
		basePath:      "/projects/{projectID}/gantt-import",
	}
}

func (c *GanttImportController) Key() string {
	return c.basePath
}

func (c *GanttImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/meta", c.Meta).Methods(http.MethodGet)
	router.HandleFunc("/parse", c.Parse).Methods(http.MethodPost)
	router.HandleFunc("/preview", c.Preview).Methods(http.MethodPost)

	commit := r.PathPrefix(c.basePath).Subrouter()
	commit.Use(middleware.WithTransaction())
	commit.HandleFunc("/commit", c.Commit).Methods(http.MethodPost)
}

type languageView struct {
	Code string `json:"code"`
	Name string `json:"name"`
	RTL  bool   `json:"rtl"`
}

type metaResponse struct {
	Fields          []ganttimport.FieldOption `json:"fields"`
	Languages       []languageView            `json:"languages"`
	DefaultLanguage string                    `json:"defaultLanguage"`
}

// Meta serves the static wizard data: the mappable fields with their Hebrew
// labels and the UI languages, so the client can pick text direction.
func (c *GanttImportController) Meta(w http.ResponseWriter, r *http.Request) {
	languages := make([]languageView, 0, len(intl.SupportedLanguages))
	for _, lang := range intl.SupportedLanguages {
		languages = append(languages, languageView{
			Code: lang.Code,
			Name: lang.VerboseName,
			RTL:  lang.RTL,
		})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &metaResponse{
		Fields:          ganttimport.FieldOptions,
		Languages:       languages,
		DefaultLanguage: intl.Default().Code,
	})
}

type parseResponse struct {
	Token    string                      `json:"token"`
	Filename string                      `json:"filename"`
	Headers  []string                    `json:"headers"`
	Mappings []ganttimport.ColumnMapping `json:"mappings"`
	Sample   []ganttimport.RawRow        `json:"sample"`
	RowCount int                         `json:"rowCount"`
}

func (c *GanttImportController) Parse(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", ganttimport.MsgUnreadableFile, nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_FILE", ganttimport.MsgUnreadableFile, nil)
		return
	}
	defer file.Close()

	ingestion, rows, err := c.importService.Parse(r.Context(), header.Filename, file)
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}

	token := c.sessions.Put(&uploadSession{
		Filename:  header.Filename,
		Ingestion: ingestion,
		Rows:      rows,
	})

	_ = httpapi.WriteJSON(w, http.StatusOK, &parseResponse{
		Token:    token,
		Filename: header.Filename,
		Headers:  ingestion.Headers,
		Mappings: ingestion.Mappings,
		Sample:   ingestion.Sample,
		RowCount: len(rows),
	})
}

type mappingRequest struct {
	Token    string                      `json:"token"`
	Mappings []ganttimport.ColumnMapping `json:"mappings"`
}

// previewRowLimit caps the sample returned to the preview table; the full
// sheet is still validated for the counts.
const previewRowLimit = 10

type previewResponse struct {
	Rows     []ganttimport.ValidatedRow `json:"rows"`
	Total    int                        `json:"total"`
	Valid    int                        `json:"valid"`
	Errors   int                        `json:"errors"`
	Warnings int                        `json:"warnings"`
}

func (c *GanttImportController) Preview(w http.ResponseWriter, r *http.Request) {
	req, session, ok := c.resolveSession(w, r)
	if !ok {
		return
	}

	rows, err := c.importService.Preview(r.Context(), session.Rows, req.Mappings)
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}

	resp := previewResponse{Total: len(rows)}
	for i := range rows {
		if rows[i].Valid() {
			resp.Valid++
		} else {
			resp.Errors++
		}
		if len(rows[i].Warnings) > 0 {
			resp.Warnings++
		}
	}
	if len(rows) > previewRowLimit {
		rows = rows[:previewRowLimit]
	}
	resp.Rows = rows
	_ = httpapi.WriteJSON(w, http.StatusOK, &resp)
}

type commitResponse struct {
	ganttimport.Report
	Message string `json:"message"`
}

func (c *GanttImportController) Commit(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["projectID"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PROJECT_ID", "invalid project id", nil)
		return
	}

	req, session, ok := c.resolveSession(w, r)
	if !ok {
		return
	}

	report, err := c.importService.Commit(r.Context(), projectID, session.Rows, req.Mappings)
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}

	c.sessions.Delete(req.Token)
	_ = httpapi.WriteJSON(w, http.StatusOK, &commitResponse{
		Report:  report,
		Message: ganttimport.MsgImportDone,
	})
}

func (c *GanttImportController) resolveSession(w http.ResponseWriter, r *http.Request) (*mappingRequest, *uploadSession, bool) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body", nil)
		return nil, nil, false
	}
	session, ok := c.sessions.Get(req.Token)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusNotFound, "UPLOAD_SESSION_NOT_FOUND", ganttimport.MsgUnreadableFile, nil)
		return nil, nil, false
	}
	return &req, session, true
}

// writeImportError translates pipeline errors into the wizard's Hebrew
// messages with stable machine codes.
func (c *GanttImportController) writeImportError(w http.ResponseWriter, r *http.Request, err error) {
	var base *serrors.BaseError
	status := http.StatusBadRequest
	code := "IMPORT_FAILED"
	message := ganttimport.MsgUnreadableFile

	switch {
	case errors.Is(err, excel.ErrUnsupportedFile):
		code, message = excel.ErrUnsupportedFile.Code, ganttimport.MsgUnsupportedFile
	case errors.Is(err, excel.ErrEmptyWorkbook):
		code, message = excel.ErrEmptyWorkbook.Code, ganttimport.MsgEmptyFile
	case errors.Is(err, excel.ErrUnreadableWorkbook):
		code, message = excel.ErrUnreadableWorkbook.Code, ganttimport.MsgUnreadableFile
	case errors.Is(err, services.ErrMappingIncomplete):
		status = http.StatusUnprocessableEntity
		code, message = services.ErrMappingIncomplete.Code, ganttimport.MsgMappingGate
	case errors.Is(err, services.ErrNoImportableRows):
		status = http.StatusUnprocessableEntity
		code, message = services.ErrNoImportableRows.Code, ganttimport.MsgNoValidRows
	case errors.Is(err, persistence.ErrProjectNotFound):
		status, code, message = http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found"
	case errors.As(err, &base):
		code, message = base.Code, base.Message
	default:
		status = http.StatusInternalServerError
		composables.UseLogger(r.Context()).WithError(err).Error("gantt import failed")
	}

	_ = httpapi.WriteError(w, status, code, message, nil)
}
