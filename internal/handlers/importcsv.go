package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/service"
)

// maxUploadBytes bounds the multipart form held in memory.
const maxUploadBytes = 32 << 20

// ImportHandler imports a bibliography CSV export.
type ImportHandler struct {
	imports service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(imports service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// RowErrorJSON is a failed CSV row.
type RowErrorJSON struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResponse reports a CSV import.
//
// swagger:model ImportResponse
type ImportResponse struct {
	Success     bool             `json:"success"`
	ImportCount int              `json:"importCount"`
	ErrorCount  int              `json:"errorCount"`
	Errors      []RowErrorJSON   `json:"errors"`
	RunID       string           `json:"runId,omitempty"`
	Batch       BatchSummaryJSON `json:"batch"`
	Data        PortfolioJSON    `json:"data"`
}

// ServeHTTP imports the uploaded file.
//
// swagger:route POST /api/import-csv importCSV
//
// # Import a bibliography CSV
//
// Accepts a multipart form with the file in `csvFile`. `clearExisting=true`
// deletes every paper first. `runId` resumes an interrupted import.
//
// ---
// consumes:
// - multipart/form-data
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/ImportResponse"
//	'400':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}
	file, _, err := r.FormFile("csvFile")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "No CSV file provided")
		return
	}
	defer file.Close()

	clearExisting, _ := strconv.ParseBool(r.FormValue("clearExisting"))
	res, err := h.imports.Import(ctx, service.ImportRequest{
		CSV:           file,
		ClearExisting: clearExisting,
		RunID:         r.FormValue("runId"),
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to import CSV")
		return
	}

	rowErrors := res.RowErrors()
	resp := ImportResponse{
		Success:     true,
		ImportCount: res.Summary.Succeeded,
		ErrorCount:  res.Summary.Failed,
		Errors:      make([]RowErrorJSON, len(rowErrors)),
		RunID:       res.RunID,
		Batch:       toBatchSummaryJSON(res.Summary),
		Data:        toPortfolioJSON(res.Portfolio),
	}
	for i, e := range rowErrors {
		resp.Errors[i] = RowErrorJSON{Row: e.Row, Error: e.Error}
	}
	writeJSON(w, r, http.StatusOK, resp)
}
