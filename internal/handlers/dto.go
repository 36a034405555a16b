package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
)

// ThemeRefJSON is a theme attached to a paper.
type ThemeRefJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PaperJSON is a paper as the site consumes it. ThemeID, ThemeName and
// ThemeColor project the primary (first) theme.
//
// swagger:model Paper
type PaperJSON struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Authors        []string       `json:"authors"`
	Year           int            `json:"year"`
	Venue          string         `json:"venue"`
	Summary        string         `json:"summary"`
	Keywords       []string       `json:"keywords"`
	ThemeID        *int64         `json:"themeId"`
	ThemeName      *string        `json:"themeName"`
	ThemeColor     *string        `json:"themeColor"`
	Themes         []ThemeRefJSON `json:"themes"`
	DOI            *string        `json:"doi"`
	Link           *string        `json:"link"`
	Volume         *string        `json:"volume"`
	Issue          *string        `json:"issue"`
	PageStart      *string        `json:"pageStart"`
	PageEnd        *string        `json:"pageEnd"`
	Type           string         `json:"type"`
	DropboxPath    *string        `json:"dropboxPath"`
	DropboxFileID  *string        `json:"dropboxFileId"`
	MetadataSource string         `json:"metadataSource,omitempty"`
}

// ThemeJSON is a theme with its paper count. LastUpdated is a date.
//
// swagger:model Theme
type ThemeJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PaperCount  int    `json:"paperCount"`
	Color       string `json:"color"`
	LastUpdated string `json:"lastUpdated"`
}

// PortfolioJSON is the listing payload returned after reads and batch writes.
type PortfolioJSON struct {
	Papers []PaperJSON `json:"papers"`
	Themes []ThemeJSON `json:"themes"`
}

// nullable maps an empty string to JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toPaperJSON(p storage.Paper) PaperJSON {
	out := PaperJSON{
		ID:             p.ID,
		Title:          p.Title,
		Authors:        nonNil(p.Authors),
		Year:           p.Year,
		Venue:          p.Venue,
		Summary:        p.Summary,
		Keywords:       nonNil(p.Keywords),
		Themes:         make([]ThemeRefJSON, len(p.Themes)),
		DOI:            nullable(p.DOI),
		Link:           nullable(p.Link),
		Volume:         nullable(p.Volume),
		Issue:          nullable(p.Issue),
		PageStart:      nullable(p.PageStart),
		PageEnd:        nullable(p.PageEnd),
		Type:           p.Type,
		DropboxPath:    nullable(p.FilePath),
		DropboxFileID:  nullable(p.FileID),
		MetadataSource: p.MetadataSource,
	}
	for i, t := range p.Themes {
		out.Themes[i] = ThemeRefJSON{ID: t.ID, Name: t.Name, Color: t.Color}
	}
	if primary, ok := p.PrimaryTheme(); ok {
		out.ThemeID = &primary.ID
		out.ThemeName = &primary.Name
		out.ThemeColor = &primary.Color
	}
	return out
}

func toPapersJSON(papers []storage.Paper) []PaperJSON {
	out := make([]PaperJSON, len(papers))
	for i, p := range papers {
		out[i] = toPaperJSON(p)
	}
	return out
}

func toThemeJSON(t storage.Theme, today time.Time) ThemeJSON {
	updated := today
	if t.LastUpdated != nil {
		updated = *t.LastUpdated
	}
	return ThemeJSON{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		PaperCount:  t.PaperCount,
		Color:       t.Color,
		LastUpdated: updated.UTC().Format(time.DateOnly),
	}
}

func toPortfolioJSON(p service.Portfolio) PortfolioJSON {
	now := time.Now()
	out := PortfolioJSON{Papers: toPapersJSON(p.Papers), Themes: make([]ThemeJSON, len(p.Themes))}
	for i, t := range p.Themes {
		out.Themes[i] = toThemeJSON(t, now)
	}
	return out
}

// flexString accepts a JSON string or number, as the site sends years both ways.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt64 accepts an id given as a JSON number or a numeric string.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if strings.TrimSpace(string(s)) == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	if err != nil {
		return err
	}
	*f = flexInt64(n)
	return nil
}

// flexList accepts a JSON array of strings or a single ';'-separated string.
type flexList []string

func (f *flexList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*f = items
		return nil
	}
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	var items []string
	for _, part := range strings.Split(string(s), ";") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	*f = items
	return nil
}
