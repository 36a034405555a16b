package storage

import "time"

// Paper types accepted by the API.
const (
	TypeArticle = "article"
	TypeBook    = "book"
	TypeChapter = "chapter"
	TypeReport  = "report"
	TypeOther   = "other"
)

// Metadata sources recorded on papers.
const (
	SourceModel    = "model"
	SourceCSV      = "csv"
	SourceManual   = "manual"
	SourceFilename = "filename"
)

// NormalizeType maps unknown or empty types to TypeOther.
func NormalizeType(t string) string {
	switch t {
	case TypeArticle, TypeBook, TypeChapter, TypeReport:
		return t
	}
	return TypeOther
}

// ValidType reports whether t is one of the accepted paper types.
func ValidType(t string) bool {
	return NormalizeType(t) == t
}

// Paper is a publication record. Empty optional strings are stored as NULL.
type Paper struct {
	ID             int64
	Title          string
	Authors        []string
	Year           int
	Venue          string
	Summary        string
	Keywords       []string
	FullText       string
	DOI            string
	Link           string
	Volume         string
	Issue          string
	PageStart      string
	PageEnd        string
	Type           string
	FileID         string
	FilePath       string
	MetadataSource string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Themes are ordered by association position; the first is the primary theme.
	Themes []ThemeRef
}

// PrimaryTheme returns the first associated theme.
func (p *Paper) PrimaryTheme() (ThemeRef, bool) {
	if len(p.Themes) == 0 {
		return ThemeRef{}, false
	}
	return p.Themes[0], true
}

// ThemeRef is the theme projection attached to papers.
type ThemeRef struct {
	ID    int64
	Name  string
	Color string
}

// Theme is a research theme.
type Theme struct {
	ID          int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time

	// Derived at query time by ListWithCounts.
	PaperCount  int
	LastUpdated *time.Time
}

// Batch run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
	RunCancelled = "cancelled"
)

// BatchRun is the durable checkpoint of a batch operation.
type BatchRun struct {
	ID         string
	Kind       string
	Status     string
	Cursor     string
	Processed  int
	Succeeded  int
	Failed     int
	Skipped    int
	LastError  string
	StartedAt  time.Time
	FinishedAt *time.Time
}
