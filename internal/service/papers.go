package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_paper_service.go -package=mocks -mock_names=PaperService=MockPaperService research-portfolio/internal/service PaperService

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"research-portfolio/internal/classify"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
	"research-portfolio/internal/textnorm"
)

const noAbstract = "No abstract provided"

// AddPaperRequest is a manually entered paper. Authors and keywords are
// semicolon separated.
type AddPaperRequest struct {
	Title     string
	Authors   string
	Year      string
	Venue     string
	Abstract  string
	Keywords  string
	DOI       string
	Link      string
	Volume    string
	Issue     string
	PageStart string
	PageEnd   string
	Type      string
}

// UpdatePaperRequest holds the fields to change. Nil fields are untouched.
// Abstract replaces the stored full text.
type UpdatePaperRequest struct {
	Title     *string
	Authors   *[]string
	Year      *int
	Venue     *string
	Abstract  *string
	Keywords  *[]string
	DOI       *string
	Link      *string
	Volume    *string
	Issue     *string
	PageStart *string
	PageEnd   *string
	Type      *string
}

// PaperService manages paper records and their theme associations.
type PaperService interface {
	// List returns every paper and every theme with counts.
	List(ctx context.Context) (Portfolio, error)
	// Get returns one paper.
	Get(ctx context.Context, id int64) (*storage.Paper, error)
	// Add stores a manually entered paper and assigns its themes.
	Add(ctx context.Context, req AddPaperRequest) (*storage.Paper, error)
	// Update changes the given fields of a paper.
	Update(ctx context.Context, id int64, req UpdatePaperRequest) (*storage.Paper, error)
	// Themes returns a paper's themes ordered by name.
	Themes(ctx context.Context, paperID int64) ([]storage.Theme, error)
	// SetThemes replaces a paper's themes. A nil slice is rejected; an empty one clears them.
	SetThemes(ctx context.Context, paperID int64, themeIDs []int64) error
	// RemoveTheme drops one theme from a paper.
	RemoveTheme(ctx context.Context, paperID, themeID int64) error
	// Stats returns the record counts.
	Stats(ctx context.Context) (Stats, error)
}

// paperService implements PaperService.
type paperService struct {
	catalog  *Catalog
	resolver *classify.Resolver
	opts     options
}

// NewPaperService creates a new PaperService.
func NewPaperService(catalog *Catalog, resolver *classify.Resolver, opts ...Option) PaperService {
	return &paperService{catalog: catalog, resolver: resolver, opts: newOptions(opts)}
}

func (s *paperService) List(ctx context.Context) (Portfolio, error) {
	return s.catalog.Snapshot(ctx)
}

func (s *paperService) Get(ctx context.Context, id int64) (*storage.Paper, error) {
	if err := requirePaperID(id); err != nil {
		return nil, err
	}
	p, err := s.catalog.Papers().Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errNoPaper
	}
	if err != nil {
		return nil, WrapError(err, "failed to load paper")
	}
	return p, nil
}

func (s *paperService) Add(ctx context.Context, req AddPaperRequest) (*storage.Paper, error) {
	logger := contextutil.LoggerFromContext(ctx)

	authors := textnorm.SplitList(req.Authors, ";")
	if strings.TrimSpace(req.Title) == "" || len(authors) == 0 || strings.TrimSpace(req.Venue) == "" {
		logger.WarnContext(ctx, "add paper missing required fields")
		return nil, &ValidationError{Field: "title", Message: "Title, authors, and venue are required fields"}
	}

	year, ok := leadingInt(req.Year)
	if !ok || year <= 0 {
		year = s.opts.now().Year()
	}
	abstract := strings.TrimSpace(req.Abstract)
	summary := abstract
	if summary == "" {
		summary = noAbstract
	}

	p := &storage.Paper{
		Title:          strings.TrimSpace(req.Title),
		Authors:        authors,
		Year:           year,
		Venue:          strings.TrimSpace(req.Venue),
		Summary:        summary,
		Keywords:       textnorm.SplitList(req.Keywords, ";"),
		FullText:       abstract,
		DOI:            strings.TrimSpace(req.DOI),
		Link:           strings.TrimSpace(req.Link),
		Volume:         strings.TrimSpace(req.Volume),
		Issue:          strings.TrimSpace(req.Issue),
		PageStart:      strings.TrimSpace(req.PageStart),
		PageEnd:        strings.TrimSpace(req.PageEnd),
		Type:           storage.NormalizeType(strings.TrimSpace(req.Type)),
		MetadataSource: storage.SourceManual,
	}

	themes, err := s.catalog.classifierThemes(ctx)
	if err != nil {
		return nil, err
	}
	themeIDs := s.resolver.AssignThemes("", p.Keywords, themes)
	if len(themeIDs) == 0 {
		logger.WarnContext(ctx, "no themes stored, using the catch-all theme")
		d := s.resolver.Resolve(classify.ResolveRequest{Keywords: p.Keywords}, themes)
		themeID, _, err := s.catalog.applyDecision(ctx, d, &themes)
		if err != nil {
			return nil, err
		}
		themeIDs = []int64{themeID}
	}

	id, err := s.catalog.Papers().Create(ctx, p)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create paper", "error", err)
		return nil, WrapError(err, "failed to create paper")
	}
	if err := s.catalog.Papers().ReplaceThemes(ctx, id, themeIDs); err != nil {
		logger.ErrorContext(ctx, "failed to assign themes", "paper_id", id, "error", err)
		return nil, WrapError(err, "failed to assign themes")
	}
	s.catalog.Invalidate(ctx)
	s.opts.index(ctx, s.catalog.Papers(), id)

	logger.InfoContext(ctx, "paper added", "paper_id", id, "themes", len(themeIDs))
	return s.Get(ctx, id)
}

func (s *paperService) Update(ctx context.Context, id int64, req UpdatePaperRequest) (*storage.Paper, error) {
	if err := requirePaperID(id); err != nil {
		return nil, err
	}

	u := storage.PaperUpdate{
		Title:     req.Title,
		Authors:   req.Authors,
		Year:      req.Year,
		Venue:     req.Venue,
		Keywords:  req.Keywords,
		FullText:  req.Abstract,
		DOI:       req.DOI,
		Link:      req.Link,
		Volume:    req.Volume,
		Issue:     req.Issue,
		PageStart: req.PageStart,
		PageEnd:   req.PageEnd,
	}
	if req.Type != nil {
		t := storage.NormalizeType(*req.Type)
		u.Type = &t
	}
	if u.IsEmpty() {
		return nil, &ValidationError{Field: "updates", Message: "No valid fields to update"}
	}

	err := s.catalog.Papers().Update(ctx, id, u)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errNoPaper
	}
	if err != nil {
		return nil, WrapError(err, "failed to update paper")
	}
	s.catalog.Invalidate(ctx)
	s.opts.index(ctx, s.catalog.Papers(), id)
	return s.Get(ctx, id)
}

func (s *paperService) Themes(ctx context.Context, paperID int64) ([]storage.Theme, error) {
	if err := requirePaperID(paperID); err != nil {
		return nil, err
	}
	themes, err := s.catalog.Themes().ForPaper(ctx, paperID)
	if err != nil {
		return nil, WrapError(err, "failed to get paper themes")
	}
	return themes, nil
}

func (s *paperService) SetThemes(ctx context.Context, paperID int64, themeIDs []int64) error {
	if paperID <= 0 || themeIDs == nil {
		return &ValidationError{Field: "themeIds", Message: "Paper ID and theme IDs array are required"}
	}
	if _, err := s.Get(ctx, paperID); err != nil {
		return err
	}
	for _, id := range themeIDs {
		if _, err := s.catalog.Themes().Get(ctx, id); errors.Is(err, storage.ErrNotFound) {
			return newError(ErrNotFound, "Theme "+strconv.FormatInt(id, 10)+" not found")
		} else if err != nil {
			return WrapError(err, "failed to load theme")
		}
	}
	if err := s.catalog.Papers().ReplaceThemes(ctx, paperID, themeIDs); err != nil {
		return WrapError(err, "failed to update paper themes")
	}
	s.catalog.Invalidate(ctx)
	s.opts.index(ctx, s.catalog.Papers(), paperID)
	return nil
}

func (s *paperService) RemoveTheme(ctx context.Context, paperID, themeID int64) error {
	if paperID <= 0 || themeID <= 0 {
		return &ValidationError{Field: "themeId", Message: "Paper ID and theme ID are required"}
	}
	err := s.catalog.Papers().RemoveTheme(ctx, paperID, themeID)
	if errors.Is(err, storage.ErrNotFound) {
		// Removing a missing link succeeds.
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "paper theme link already absent", "paper_id", paperID, "theme_id", themeID)
		return nil
	}
	if err != nil {
		return WrapError(err, "failed to remove paper theme")
	}
	s.catalog.Invalidate(ctx)
	s.opts.index(ctx, s.catalog.Papers(), paperID)
	return nil
}

func (s *paperService) Stats(ctx context.Context) (Stats, error) {
	return s.catalog.Stats(ctx)
}

// leadingInt parses the leading digits of s.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return 0, false
	}
	if end > 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
