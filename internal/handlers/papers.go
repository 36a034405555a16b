package handlers

import (
	"net/http"
	"strconv"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
)

// PapersHandler serves the full portfolio listing.
type PapersHandler struct {
	papers service.PaperService
}

// NewPapersHandler creates a new PapersHandler.
func NewPapersHandler(papers service.PaperService) *PapersHandler {
	return &PapersHandler{papers: papers}
}

// PapersResponse is the portfolio listing.
//
// swagger:model PapersResponse
type PapersResponse struct {
	Success bool          `json:"success"`
	Data    PortfolioJSON `json:"data"`
}

// ServeHTTP lists every paper and theme.
//
// swagger:route GET /api/papers listPapers
//
// # List papers and themes
//
// Papers are ordered by year (newest first) then title. Themes are ordered by
// paper count then name.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/PapersResponse"
//	'500':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PapersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	p, err := h.papers.List(ctx)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch papers")
		return
	}
	logger.InfoContext(ctx, "listed papers", "papers", len(p.Papers), "themes", len(p.Themes))
	writeJSON(w, r, http.StatusOK, PapersResponse{Success: true, Data: toPortfolioJSON(p)})
}

// AddPaperHandler stores a manually entered paper.
type AddPaperHandler struct {
	papers service.PaperService
}

// NewAddPaperHandler creates a new AddPaperHandler.
func NewAddPaperHandler(papers service.PaperService) *AddPaperHandler {
	return &AddPaperHandler{papers: papers}
}

// AddPaperRequest is a manually entered paper. Authors and keywords are
// ';'-separated.
//
// swagger:model AddPaperRequest
type AddPaperRequest struct {
	Title     string     `json:"title"`
	Authors   string     `json:"authors"`
	Year      flexString `json:"year"`
	Venue     string     `json:"venue"`
	Abstract  string     `json:"abstract"`
	Keywords  string     `json:"keywords"`
	DOI       string     `json:"doi"`
	Link      string     `json:"link"`
	Volume    string     `json:"volume"`
	Issue     string     `json:"issue"`
	PageStart string     `json:"pageStart"`
	PageEnd   string     `json:"pageEnd"`
	Type      string     `json:"type"`
}

// PaperResponse carries one paper.
//
// swagger:model PaperResponse
type PaperResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Paper   PaperJSON `json:"paper"`
}

// ServeHTTP adds a paper.
//
// swagger:route POST /api/add-paper addPaper
//
// # Add a paper
//
// Title, authors and venue are required. Themes are assigned from the keywords.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/PaperResponse"
//	'400':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AddPaperHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req AddPaperRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.papers.Add(r.Context(), service.AddPaperRequest{
		Title:     req.Title,
		Authors:   req.Authors,
		Year:      string(req.Year),
		Venue:     req.Venue,
		Abstract:  req.Abstract,
		Keywords:  req.Keywords,
		DOI:       req.DOI,
		Link:      req.Link,
		Volume:    req.Volume,
		Issue:     req.Issue,
		PageStart: req.PageStart,
		PageEnd:   req.PageEnd,
		Type:      req.Type,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to add paper")
		return
	}
	writeJSON(w, r, http.StatusOK, PaperResponse{Success: true, Message: "Paper added successfully", Paper: toPaperJSON(*p)})
}

// UpdatePaperHandler edits paper fields.
type UpdatePaperHandler struct {
	papers service.PaperService
}

// NewUpdatePaperHandler creates a new UpdatePaperHandler.
func NewUpdatePaperHandler(papers service.PaperService) *UpdatePaperHandler {
	return &UpdatePaperHandler{papers: papers}
}

// PaperUpdates lists the editable fields. Absent fields are left as they are.
//
// swagger:model PaperUpdates
type PaperUpdates struct {
	Title     *string     `json:"title"`
	Authors   *flexList   `json:"authors"`
	Year      *flexString `json:"year"`
	Venue     *string     `json:"venue"`
	Abstract  *string     `json:"abstract"`
	Keywords  *flexList   `json:"keywords"`
	DOI       *string     `json:"doi"`
	Link      *string     `json:"link"`
	Volume    *string     `json:"volume"`
	Issue     *string     `json:"issue"`
	PageStart *string     `json:"pageStart"`
	PageEnd   *string     `json:"pageEnd"`
	Type      *string     `json:"type"`
}

// UpdatePaperRequest names the paper and the changes.
//
// swagger:model UpdatePaperRequest
type UpdatePaperRequest struct {
	PaperID flexInt64    `json:"paperId"`
	Updates PaperUpdates `json:"updates"`
}

// ServeHTTP updates a paper.
func (h *UpdatePaperHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req UpdatePaperRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u := req.Updates
	upd := service.UpdatePaperRequest{
		Title:     u.Title,
		Venue:     u.Venue,
		Abstract:  u.Abstract,
		DOI:       u.DOI,
		Link:      u.Link,
		Volume:    u.Volume,
		Issue:     u.Issue,
		PageStart: u.PageStart,
		PageEnd:   u.PageEnd,
		Type:      u.Type,
	}
	if u.Authors != nil {
		authors := []string(*u.Authors)
		upd.Authors = &authors
	}
	if u.Keywords != nil {
		keywords := []string(*u.Keywords)
		upd.Keywords = &keywords
	}
	if u.Year != nil {
		year, err := strconv.Atoi(string(*u.Year))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "Year must be a number")
			return
		}
		upd.Year = &year
	}

	p, err := h.papers.Update(r.Context(), int64(req.PaperID), upd)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update paper")
		return
	}
	writeJSON(w, r, http.StatusOK, PaperResponse{Success: true, Message: "Paper updated successfully", Paper: toPaperJSON(*p)})
}

// StatsHandler serves the record counts.
type StatsHandler struct {
	papers service.PaperService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(papers service.PaperService) *StatsHandler {
	return &StatsHandler{papers: papers}
}

// StatsResponse holds the record counts.
//
// swagger:model StatsResponse
type StatsResponse struct {
	Success bool `json:"success"`
	Stats   struct {
		Papers int `json:"papers"`
		Themes int `json:"themes"`
	} `json:"stats"`
}

// ServeHTTP returns the paper and theme counts.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st, err := h.papers.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch stats")
		return
	}
	resp := StatsResponse{Success: true}
	resp.Stats.Papers = st.Papers
	resp.Stats.Themes = st.Themes
	writeJSON(w, r, http.StatusOK, resp)
}

// PaperThemesHandler reads and edits a paper's theme associations.
type PaperThemesHandler struct {
	papers service.PaperService
}

// NewPaperThemesHandler creates a new PaperThemesHandler.
func NewPaperThemesHandler(papers service.PaperService) *PaperThemesHandler {
	return &PaperThemesHandler{papers: papers}
}

// PaperThemeJSON is a theme returned for a paper.
type PaperThemeJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// PaperThemesResponse lists a paper's themes by name.
type PaperThemesResponse struct {
	Success bool             `json:"success"`
	Themes  []PaperThemeJSON `json:"themes"`
}

// SetPaperThemesRequest replaces a paper's themes.
type SetPaperThemesRequest struct {
	PaperID  flexInt64 `json:"paperId"`
	ThemeIDs []int64   `json:"themeIds"`
}

// RemovePaperThemeRequest drops one theme from a paper.
type RemovePaperThemeRequest struct {
	PaperID flexInt64 `json:"paperId"`
	ThemeID flexInt64 `json:"themeId"`
}

// ServeHTTP dispatches on method: GET lists, POST replaces, DELETE removes.
func (h *PaperThemesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		id, _ := strconv.ParseInt(r.URL.Query().Get("paperId"), 10, 64)
		themes, err := h.papers.Themes(ctx, id)
		if err != nil {
			writeServiceError(w, r, err, "Failed to get paper themes")
			return
		}
		writeJSON(w, r, http.StatusOK, PaperThemesResponse{Success: true, Themes: toPaperThemesJSON(themes)})

	case http.MethodPost:
		var req SetPaperThemesRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.papers.SetThemes(ctx, int64(req.PaperID), req.ThemeIDs); err != nil {
			writeServiceError(w, r, err, "Failed to update paper themes")
			return
		}
		writeJSON(w, r, http.StatusOK, MessageResponse{Success: true, Message: "Updated themes for paper " + strconv.FormatInt(int64(req.PaperID), 10)})

	case http.MethodDelete:
		var req RemovePaperThemeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.papers.RemoveTheme(ctx, int64(req.PaperID), int64(req.ThemeID)); err != nil {
			writeServiceError(w, r, err, "Failed to remove theme from paper")
			return
		}
		writeJSON(w, r, http.StatusOK, MessageResponse{
			Success: true,
			Message: "Removed theme " + strconv.FormatInt(int64(req.ThemeID), 10) + " from paper " + strconv.FormatInt(int64(req.PaperID), 10),
		})

	default:
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func toPaperThemesJSON(themes []storage.Theme) []PaperThemeJSON {
	out := make([]PaperThemeJSON, len(themes))
	for i, t := range themes {
		out[i] = PaperThemeJSON{ID: t.ID, Name: t.Name, Color: t.Color, Description: t.Description}
	}
	return out
}
