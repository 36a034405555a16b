package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
)

var paperPage = template.Must(template.New("paper").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} ({{.Year}})</title>
  <style>
    body {
      font-family: Georgia, 'Times New Roman', serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 820px;
      line-height: 1.65;
      color: #1f2933;
      background: #fbfaf7;
    }
    header {
      border-bottom: 1px solid #d9d4c7;
      padding-bottom: 1.25rem;
      margin-bottom: 1.5rem;
    }
    h1 {
      margin: 0 0 0.5rem;
      font-size: 1.9rem;
    }
    .byline, .meta {
      color: #52606d;
      font-size: 0.95rem;
      margin: 0.25rem 0;
    }
    .theme {
      display: inline-block;
      padding: 2px 10px;
      margin: 0.5rem 0.4rem 0 0;
      border-radius: 12px;
      color: #fff;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      font-size: 0.8rem;
    }
    .keywords {
      margin-top: 2rem;
      color: #52606d;
      font-size: 0.9rem;
    }
    a {
      color: #2c5282;
    }
    @media (max-width: 640px) {
      body {
        padding: 1rem;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="byline">{{.Authors}}</p>
    <p class="meta">{{.Venue}}{{if .Citation}}, {{.Citation}}{{end}} &middot; {{.Year}}</p>
    {{if .DOI}}<p class="meta">DOI: <a href="https://doi.org/{{.DOI}}">{{.DOI}}</a></p>{{end}}
    {{if .Link}}<p class="meta"><a href="{{.Link}}">Publisher page</a></p>{{end}}
    {{range .Themes}}<span class="theme" style="background: {{.Color}}">{{.Name}}</span>{{end}}
  </header>
  <article>{{.Summary}}</article>
  {{if .Keywords}}<p class="keywords">Keywords: {{.Keywords}}</p>{{end}}
</body>
</html>`))

type paperPageData struct {
	Title    string
	Authors  string
	Year     int
	Venue    string
	Citation string
	DOI      string
	Link     string
	Themes   []storage.ThemeRef
	Summary  template.HTML
	Keywords string
}

// PaperPageHandler renders one paper as an HTML page.
type PaperPageHandler struct {
	papers service.PaperService
	md     goldmark.Markdown
}

// NewPaperPageHandler creates a new PaperPageHandler.
func NewPaperPageHandler(papers service.PaperService) *PaperPageHandler {
	return &PaperPageHandler{papers: papers, md: newMarkdown()}
}

// ServeHTTP renders the paper named by the id route parameter.
func (h *PaperPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid paper id", http.StatusBadRequest)
		return
	}

	p, err := h.papers.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "paper not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load paper", "paper_id", id, "error", err)
		http.Error(w, "failed to load paper", http.StatusInternalServerError)
		return
	}

	summary, err := renderMarkdown(h.md, p.Summary)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render summary", "paper_id", id, "error", err)
		http.Error(w, "failed to render paper", http.StatusInternalServerError)
		return
	}

	data := paperPageData{
		Title:    p.Title,
		Authors:  strings.Join(p.Authors, ", "),
		Year:     p.Year,
		Venue:    p.Venue,
		Citation: citation(*p),
		DOI:      p.DOI,
		Link:     p.Link,
		Themes:   p.Themes,
		Summary:  template.HTML(summary),
		Keywords: strings.Join(p.Keywords, ", "),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := paperPage.Execute(w, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute paper template", "paper_id", id, "error", err)
	}
}

// citation formats volume, issue and pages as "12(3), 45-67".
func citation(p storage.Paper) string {
	var b strings.Builder
	b.WriteString(p.Volume)
	if p.Issue != "" {
		b.WriteString("(" + p.Issue + ")")
	}
	if p.PageStart != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.PageStart)
		if p.PageEnd != "" {
			b.WriteString("-" + p.PageEnd)
		}
	}
	return b.String()
}
