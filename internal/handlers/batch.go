package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"research-portfolio/internal/service"
)

// ItemResultJSON is the outcome of one batch item.
type ItemResultJSON struct {
	Key     string `json:"key"`
	Status  string `json:"status"`
	PaperID int64  `json:"paperId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchSummaryJSON counts batch outcomes.
type BatchSummaryJSON struct {
	Total     int  `json:"total"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
	Skipped   int  `json:"skipped"`
	Cancelled bool `json:"cancelled"`
}

func toItemResultsJSON(results []service.ItemResult) []ItemResultJSON {
	out := make([]ItemResultJSON, len(results))
	for i, r := range results {
		out[i] = ItemResultJSON{Key: r.Key, Status: r.Status, PaperID: r.PaperID, Error: r.Error}
	}
	return out
}

func toBatchSummaryJSON(s service.Summary) BatchSummaryJSON {
	return BatchSummaryJSON{Total: s.Total, Succeeded: s.Succeeded, Failed: s.Failed, Skipped: s.Skipped, Cancelled: s.Cancelled}
}

// SyncHandler imports new PDFs from the file store.
type SyncHandler struct {
	sync service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(sync service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// FileErrorJSON names a file that failed to import.
type FileErrorJSON struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// SyncSummaryJSON is the file-level sync report.
type SyncSummaryJSON struct {
	TotalPDFFiles    int             `json:"totalPdfFiles"`
	NewPapers        int             `json:"newPapers"`
	SkippedFiles     int             `json:"skippedFiles"`
	ErrorFiles       int             `json:"errorFiles"`
	SkippedFileNames []string        `json:"skippedFileNames"`
	ErrorDetails     []FileErrorJSON `json:"errorDetails"`
}

// SyncResponse reports a sync run.
//
// swagger:model SyncResponse
type SyncResponse struct {
	Success        bool             `json:"success"`
	NewPapers      int              `json:"newPapers"`
	ThemesUpdated  int              `json:"themesUpdated"`
	MetadataSource string           `json:"metadataSource"`
	Summary        SyncSummaryJSON  `json:"summary"`
	Batch          BatchSummaryJSON `json:"batch"`
	Results        []ItemResultJSON `json:"results"`
	Data           PortfolioJSON    `json:"data"`
}

// ServeHTTP runs a sync.
//
// swagger:route POST /api/sync-dropbox syncFiles
//
// # Import new PDFs
//
// Lists every PDF in the file store and imports the ones not stored yet.
// Requires the admin token.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/SyncResponse"
//	'401':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.sync.Sync(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to sync with Dropbox")
		return
	}

	summary := SyncSummaryJSON{
		TotalPDFFiles:    res.TotalFiles,
		NewPapers:        res.NewPapers,
		SkippedFiles:     res.Summary.Skipped,
		ErrorFiles:       res.Summary.Failed,
		SkippedFileNames: nonNil(res.SkippedNames()),
		ErrorDetails:     []FileErrorJSON{},
	}
	for _, it := range res.Results {
		if it.Status == service.ItemFailed {
			summary.ErrorDetails = append(summary.ErrorDetails, FileErrorJSON{Name: it.Key, Error: it.Error})
		}
	}
	writeJSON(w, r, http.StatusOK, SyncResponse{
		Success:        true,
		NewPapers:      res.NewPapers,
		ThemesUpdated:  res.ThemesCreated,
		MetadataSource: res.MetadataSource,
		Summary:        summary,
		Batch:          toBatchSummaryJSON(res.Summary),
		Results:        toItemResultsJSON(res.Results),
		Data:           toPortfolioJSON(res.Portfolio),
	})
}

// CheckNewHandler reports which PDFs a sync would import.
type CheckNewHandler struct {
	sync service.SyncService
}

// NewCheckNewHandler creates a new CheckNewHandler.
func NewCheckNewHandler(sync service.SyncService) *CheckNewHandler {
	return &CheckNewHandler{sync: sync}
}

// CheckNewResponse compares the file store with the stored papers.
type CheckNewResponse struct {
	Success            bool     `json:"success"`
	TotalDropboxFiles  int      `json:"totalDropboxFiles"`
	ExistingInDatabase int      `json:"existingInDatabase"`
	NewFiles           int      `json:"newFiles"`
	NewFileNames       []string `json:"newFileNames"`
	NeedsSync          bool     `json:"needsSync"`
}

// ServeHTTP checks for new files.
func (h *CheckNewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.sync.CheckNew(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to check for new papers")
		return
	}
	writeJSON(w, r, http.StatusOK, CheckNewResponse{
		Success:            true,
		TotalDropboxFiles:  res.TotalFiles,
		ExistingInDatabase: res.Existing,
		NewFiles:           len(res.NewFileNames),
		NewFileNames:       res.NewFileNames,
		NeedsSync:          len(res.NewFileNames) > 0,
	})
}

// ReanalyzeBatchHandler reanalyzes the next page of papers.
type ReanalyzeBatchHandler struct {
	reanalyze service.ReanalyzeService
}

// NewReanalyzeBatchHandler creates a new ReanalyzeBatchHandler.
func NewReanalyzeBatchHandler(reanalyze service.ReanalyzeService) *ReanalyzeBatchHandler {
	return &ReanalyzeBatchHandler{reanalyze: reanalyze}
}

// ReanalyzeBatchRequest pages through papers. An empty body starts a new run.
type ReanalyzeBatchRequest struct {
	Limit int    `json:"limit"`
	RunID string `json:"runId"`
}

// ReanalyzeBatchResponse reports one page of reanalysis.
//
// swagger:model ReanalyzeBatchResponse
type ReanalyzeBatchResponse struct {
	Success        bool             `json:"success"`
	UpdatedCount   int              `json:"updatedCount"`
	ErrorCount     int              `json:"errorCount"`
	TotalProcessed int              `json:"totalProcessed"`
	RunID          string           `json:"runId,omitempty"`
	HasMore        bool             `json:"hasMore"`
	Batch          BatchSummaryJSON `json:"batch"`
	Results        []ItemResultJSON `json:"results"`
	Data           PortfolioJSON    `json:"data"`
}

// ServeHTTP reanalyzes a page of papers.
func (h *ReanalyzeBatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ReanalyzeBatchRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	if q := r.URL.Query().Get("limit"); q != "" && req.Limit == 0 {
		req.Limit, _ = strconv.Atoi(q)
	}

	res, err := h.reanalyze.Batch(r.Context(), service.ReanalyzeRequest{Limit: req.Limit, RunID: req.RunID})
	if err != nil {
		writeServiceError(w, r, err, "Failed to re-analyze papers")
		return
	}
	writeJSON(w, r, http.StatusOK, ReanalyzeBatchResponse{
		Success:        true,
		UpdatedCount:   res.Summary.Succeeded,
		ErrorCount:     res.Summary.Failed,
		TotalProcessed: res.Summary.Total,
		RunID:          res.RunID,
		HasMore:        res.HasMore,
		Batch:          toBatchSummaryJSON(res.Summary),
		Results:        toItemResultsJSON(res.Results),
		Data:           toPortfolioJSON(res.Portfolio),
	})
}

// ReanalyzeOneHandler reanalyzes a single paper.
type ReanalyzeOneHandler struct {
	reanalyze service.ReanalyzeService
}

// NewReanalyzeOneHandler creates a new ReanalyzeOneHandler.
func NewReanalyzeOneHandler(reanalyze service.ReanalyzeService) *ReanalyzeOneHandler {
	return &ReanalyzeOneHandler{reanalyze: reanalyze}
}

// PaperIDRequest names a paper.
type PaperIDRequest struct {
	PaperID flexInt64 `json:"paperId"`
}

// ServeHTTP reanalyzes one paper.
func (h *ReanalyzeOneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req PaperIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.reanalyze.One(r.Context(), int64(req.PaperID))
	if err != nil {
		writeServiceError(w, r, err, "Failed to re-analyze paper")
		return
	}
	writeJSON(w, r, http.StatusOK, PaperResponse{
		Success: true,
		Message: fmt.Sprintf("Paper \"%s\" re-analyzed successfully", p.Title),
		Paper:   toPaperJSON(*p),
	})
}

// ConsolidateHandler replaces the theme set with the consolidated themes.
type ConsolidateHandler struct {
	maintenance service.MaintenanceService
}

// NewConsolidateHandler creates a new ConsolidateHandler.
func NewConsolidateHandler(maintenance service.MaintenanceService) *ConsolidateHandler {
	return &ConsolidateHandler{maintenance: maintenance}
}

// ConsolidateResponse reports a consolidation.
type ConsolidateResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    PortfolioJSON `json:"data"`
	Stats   struct {
		ThemeCount    int `json:"themeCount"`
		UpdatedPapers int `json:"updatedPapers"`
	} `json:"stats"`
	Batch   BatchSummaryJSON `json:"batch"`
	Results []ItemResultJSON `json:"results"`
}

// ServeHTTP consolidates themes. Every existing theme is deleted.
func (h *ConsolidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.maintenance.Consolidate(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to consolidate themes")
		return
	}
	resp := ConsolidateResponse{
		Success: true,
		Message: fmt.Sprintf("Theme consolidation completed! Created %d themes and reassigned %d papers.", res.ThemeCount, res.Summary.Succeeded),
		Data:    toPortfolioJSON(res.Portfolio),
		Batch:   toBatchSummaryJSON(res.Summary),
		Results: toItemResultsJSON(res.Results),
	}
	resp.Stats.ThemeCount = res.ThemeCount
	resp.Stats.UpdatedPapers = res.Summary.Succeeded
	writeJSON(w, r, http.StatusOK, resp)
}

// FixArraysHandler repairs double-nested list columns.
type FixArraysHandler struct {
	maintenance service.MaintenanceService
}

// NewFixArraysHandler creates a new FixArraysHandler.
func NewFixArraysHandler(maintenance service.MaintenanceService) *FixArraysHandler {
	return &FixArraysHandler{maintenance: maintenance}
}

// ServeHTTP repairs stored lists.
func (h *FixArraysHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, err := h.maintenance.RepairArrays(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fix arrays")
		return
	}
	writeJSON(w, r, http.StatusOK, MessageResponse{Success: true, Message: fmt.Sprintf("Fixed %d papers with double-nested arrays", n)})
}
