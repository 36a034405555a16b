package handlers

import (
	"net/http"

	"github.com/yuin/goldmark"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/service"
)

// QAHandler answers visitor questions about the portfolio.
type QAHandler struct {
	qa service.QAService
	md goldmark.Markdown
}

// NewQAHandler creates a new QAHandler.
func NewQAHandler(qa service.QAService) *QAHandler {
	return &QAHandler{qa: qa, md: newMarkdown()}
}

// PortfolioContext is what the site already knows about the portfolio.
type PortfolioContext struct {
	Papers []struct {
		ID int64 `json:"id"`
	} `json:"papers"`
	Themes []struct {
		Name string `json:"name"`
	} `json:"themes"`
}

// QARequest is a visitor question.
//
// swagger:model QARequest
type QARequest struct {
	Question string            `json:"question"`
	Context  *PortfolioContext `json:"context,omitempty"`
}

// RelevantPaperJSON is a paper the answer drew on.
type RelevantPaperJSON struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// QAResponse carries the answer as markdown and as HTML.
//
// swagger:model QAResponse
type QAResponse struct {
	Success        bool                `json:"success"`
	Answer         string              `json:"answer"`
	AnswerHTML     string              `json:"answerHtml"`
	RelevantPapers []RelevantPaperJSON `json:"relevantPapers"`
}

// ServeHTTP answers a question.
//
// swagger:route POST /api/research-qa researchQA
//
// # Ask about the research
//
// Finds the papers relevant to the question and asks the model to answer from them.
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
//	    "$ref": "#/definitions/QAResponse"
//	'400':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Model call failed
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: Model returned an unusable answer
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *QAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QARequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ask := service.AskRequest{Question: req.Question}
	if req.Context != nil {
		ask.PaperCount = len(req.Context.Papers)
		for _, t := range req.Context.Themes {
			ask.ThemeNames = append(ask.ThemeNames, t.Name)
		}
	}

	res, err := h.qa.Ask(ctx, ask)
	if err != nil {
		writeServiceError(w, r, err, "Failed to process question")
		return
	}

	html, err := renderMarkdown(h.md, res.Answer)
	if err != nil {
		logger.WarnContext(ctx, "failed to render answer", "error", err)
	}
	resp := QAResponse{
		Success:        true,
		Answer:         res.Answer,
		AnswerHTML:     html,
		RelevantPapers: make([]RelevantPaperJSON, len(res.Papers)),
	}
	for i, p := range res.Papers {
		resp.RelevantPapers[i] = RelevantPaperJSON{ID: p.ID, Title: p.Title, Year: p.Year}
	}
	writeJSON(w, r, http.StatusOK, resp)
}
