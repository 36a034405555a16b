package handlers

import (
	"net/http"

	"research-portfolio/internal/analysis"
)

// SiteHandler serves the researcher profile.
type SiteHandler struct {
	profile *analysis.Profile
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(profile *analysis.Profile) *SiteHandler {
	return &SiteHandler{profile: profile}
}

// SiteResponse wraps the profile.
type SiteResponse struct {
	Success bool              `json:"success"`
	Data    *analysis.Profile `json:"data"`
}

// ServeHTTP returns the profile.
func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, SiteResponse{Success: true, Data: h.profile})
}
