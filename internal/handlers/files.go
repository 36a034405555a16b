package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"research-portfolio/internal/cloudstore"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/filematch"
	"research-portfolio/internal/service"
)

// PDFLinkHandler finds a paper's PDF and returns a temporary download URL.
type PDFLinkHandler struct {
	files service.FileService
}

// NewPDFLinkHandler creates a new PDFLinkHandler.
func NewPDFLinkHandler(files service.FileService) *PDFLinkHandler {
	return &PDFLinkHandler{files: files}
}

// PDFLinkRequest describes the paper to look up.
type PDFLinkRequest struct {
	PaperTitle   string     `json:"paperTitle"`
	PaperYear    flexString `json:"paperYear"`
	PaperAuthors flexList   `json:"paperAuthors"`
}

// PDFLinkResponse is a matched file.
//
// swagger:model PDFLinkResponse
type PDFLinkResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
	MatchScore  int    `json:"matchScore"`
}

// PDFNotFoundResponse lists a few stored files when nothing matched.
type PDFNotFoundResponse struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error"`
	AvailableFiles []string `json:"availableFiles"`
}

// ServeHTTP returns a download link.
func (h *PDFLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req PDFLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	meta := filematch.Meta{Title: req.PaperTitle, Authors: req.PaperAuthors}
	fmt.Sscanf(string(req.PaperYear), "%d", &meta.Year)

	res, err := h.files.PDFLink(r.Context(), meta)
	var se *service.Error
	if errors.As(err, &se) && errors.Is(err, service.ErrNotFound) {
		writeJSON(w, r, http.StatusNotFound, PDFNotFoundResponse{Success: false, Error: se.Message, AvailableFiles: res.AvailableFiles})
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "Failed to get PDF link")
		return
	}
	writeJSON(w, r, http.StatusOK, PDFLinkResponse{Success: true, DownloadURL: res.URL, Filename: res.Filename, MatchScore: res.Score})
}

// LinkPDFHandler lists unlinked papers and stores file links.
type LinkPDFHandler struct {
	files service.FileService
}

// NewLinkPDFHandler creates a new LinkPDFHandler.
func NewLinkPDFHandler(files service.FileService) *LinkPDFHandler {
	return &LinkPDFHandler{files: files}
}

// LinkPDFRequest links a paper to a stored file. Empty values clear the link.
type LinkPDFRequest struct {
	PaperID       flexInt64 `json:"paperId"`
	DropboxPath   string    `json:"dropboxPath"`
	DropboxFileID string    `json:"dropboxFileId"`
}

// UnlinkedPaperJSON is a paper without a file.
type UnlinkedPaperJSON struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Year          int      `json:"year"`
	DropboxPath   *string  `json:"dropboxPath"`
	DropboxFileID *string  `json:"dropboxFileId"`
}

// UnlinkedResponse lists papers without a file.
type UnlinkedResponse struct {
	Success bool                `json:"success"`
	Papers  []UnlinkedPaperJSON `json:"papers"`
}

// ServeHTTP lists unlinked papers on GET and links a file on POST.
func (h *LinkPDFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		papers, err := h.files.Unlinked(ctx)
		if err != nil {
			writeServiceError(w, r, err, "Failed to get unlinked papers")
			return
		}
		resp := UnlinkedResponse{Success: true, Papers: make([]UnlinkedPaperJSON, len(papers))}
		for i, p := range papers {
			resp.Papers[i] = UnlinkedPaperJSON{
				ID:            p.ID,
				Title:         p.Title,
				Authors:       nonNil(p.Authors),
				Year:          p.Year,
				DropboxPath:   nullable(p.FilePath),
				DropboxFileID: nullable(p.FileID),
			}
		}
		writeJSON(w, r, http.StatusOK, resp)

	case http.MethodPost:
		var req LinkPDFRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.files.Link(ctx, int64(req.PaperID), req.DropboxPath, req.DropboxFileID); err != nil {
			writeServiceError(w, r, err, "Failed to link PDF")
			return
		}
		writeJSON(w, r, http.StatusOK, MessageResponse{Success: true, Message: "Paper linked to PDF successfully"})

	default:
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// RenamePDFHandler renames a stored PDF.
type RenamePDFHandler struct {
	files service.FileService
}

// NewRenamePDFHandler creates a new RenamePDFHandler.
func NewRenamePDFHandler(files service.FileService) *RenamePDFHandler {
	return &RenamePDFHandler{files: files}
}

// RenamePDFRequest renames oldPath within its folder.
type RenamePDFRequest struct {
	OldPath string    `json:"oldPath"`
	NewName string    `json:"newName"`
	PaperID flexInt64 `json:"paperId"`
}

// RenamePDFResponse is the renamed file.
type RenamePDFResponse struct {
	Success bool   `json:"success"`
	OldPath string `json:"oldPath"`
	NewPath string `json:"newPath"`
	Message string `json:"message"`
}

// ServeHTTP renames a file.
func (h *RenamePDFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RenamePDFRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.files.Rename(r.Context(), service.RenameRequest{OldPath: req.OldPath, NewName: req.NewName, PaperID: int64(req.PaperID)})
	if err != nil {
		writeServiceError(w, r, err, "Failed to rename PDF")
		return
	}
	writeJSON(w, r, http.StatusOK, RenamePDFResponse{
		Success: true,
		OldPath: res.OldPath,
		NewPath: res.NewPath,
		Message: "File renamed to " + res.Name,
	})
}

// SuggestHandler proposes conventional filenames for every paper.
type SuggestHandler struct {
	files service.FileService
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(files service.FileService) *SuggestHandler {
	return &SuggestHandler{files: files}
}

// FileJSON is a stored file.
type FileJSON struct {
	Name string `json:"name"`
	Path string `json:"path"`
	ID   string `json:"id"`
}

// SuggestionJSON proposes names for one paper.
type SuggestionJSON struct {
	PaperID         int64     `json:"paperId"`
	PaperTitle      string    `json:"paperTitle"`
	PaperYear       int       `json:"paperYear"`
	PaperAuthors    []string  `json:"paperAuthors"`
	CurrentFile     *FileJSON `json:"currentFile"`
	SuggestedNames  []string  `json:"suggestedNames"`
	RecommendedName string    `json:"recommendedName"`
}

// SuggestResponse holds every suggestion and the unclaimed files.
//
// swagger:model SuggestResponse
type SuggestResponse struct {
	Success        bool                   `json:"success"`
	Suggestions    []SuggestionJSON       `json:"suggestions"`
	UnmatchedFiles []FileJSON             `json:"unmatchedFiles"`
	TotalPapers    int                    `json:"totalPapers"`
	TotalPDFFiles  int                    `json:"totalPdfFiles"`
	Conventions    []filematch.Convention `json:"conventions"`
}

func toFileJSON(f cloudstore.File) FileJSON {
	return FileJSON{Name: f.Name, Path: f.PathLower, ID: f.ID}
}

// ServeHTTP builds filename suggestions.
func (h *SuggestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.files.Suggest(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate suggestions")
		return
	}
	resp := SuggestResponse{
		Success:        true,
		Suggestions:    make([]SuggestionJSON, len(res.Suggestions)),
		UnmatchedFiles: make([]FileJSON, len(res.Unmatched)),
		TotalPapers:    res.TotalPapers,
		TotalPDFFiles:  res.TotalFiles,
		Conventions:    filematch.Conventions,
	}
	for i, s := range res.Suggestions {
		sg := SuggestionJSON{
			PaperID:         s.Paper.ID,
			PaperTitle:      s.Paper.Title,
			PaperYear:       s.Paper.Year,
			PaperAuthors:    nonNil(s.Paper.Authors),
			SuggestedNames:  s.Names,
			RecommendedName: s.Recommended,
		}
		if s.Current != nil {
			f := toFileJSON(*s.Current)
			sg.CurrentFile = &f
		}
		resp.Suggestions[i] = sg
	}
	for i, f := range res.Unmatched {
		resp.UnmatchedFiles[i] = toFileJSON(f)
	}
	writeJSON(w, r, http.StatusOK, resp)
}
