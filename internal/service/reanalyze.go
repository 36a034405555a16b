package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reanalyze_service.go -package=mocks -mock_names=ReanalyzeService=MockReanalyzeService research-portfolio/internal/service ReanalyzeService

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/classify"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
)

// Reanalysis limits.
const (
	DefaultReanalyzeLimit = 10
	MaxReanalyzeLimit     = 100
	minFullTextChars      = 100
)

// ReanalyzeRequest selects the next page of papers to reanalyze.
type ReanalyzeRequest struct {
	Limit int
	// RunID resumes a checkpointed run after its last processed paper.
	RunID string
}

// ReanalyzeResult reports a batch reanalysis.
type ReanalyzeResult struct {
	RunID   string
	Results []ItemResult
	Summary Summary
	// HasMore is set when the page was full and another call may find more papers.
	HasMore   bool
	Portfolio Portfolio
}

// ReanalyzeService refreshes model-derived summaries and themes.
type ReanalyzeService interface {
	// Batch reanalyzes papers with stored text in id order.
	Batch(ctx context.Context, req ReanalyzeRequest) (ReanalyzeResult, error)
	// One reanalyzes a single paper.
	One(ctx context.Context, paperID int64) (*storage.Paper, error)
}

// reanalyzeService implements ReanalyzeService.
type reanalyzeService struct {
	catalog  *Catalog
	batches  storage.BatchStore
	analyzer analysis.Analyzer
	resolver *classify.Resolver
	opts     options
}

// NewReanalyzeService creates a new ReanalyzeService. A nil batch store
// disables checkpoints.
func NewReanalyzeService(catalog *Catalog, batches storage.BatchStore, analyzer analysis.Analyzer, resolver *classify.Resolver, opts ...Option) ReanalyzeService {
	return &reanalyzeService{
		catalog:  catalog,
		batches:  batches,
		analyzer: analyzer,
		resolver: resolver,
		opts:     newOptions(opts),
	}
}

func (s *reanalyzeService) Batch(ctx context.Context, req ReanalyzeRequest) (ReanalyzeResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if s.analyzer == nil {
		return ReanalyzeResult{}, errNoModel
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultReanalyzeLimit
	}
	if limit > MaxReanalyzeLimit {
		limit = MaxReanalyzeLimit
	}

	b, err := startBatch(ctx, KindReanalyze, s.batches, s.opts.obs, req.RunID)
	if err != nil {
		return ReanalyzeResult{}, err
	}
	papers, err := s.catalog.Papers().WithFullText(ctx, b.cursorInt(), limit)
	if err != nil {
		b.finish(ctx, err)
		return ReanalyzeResult{}, WrapError(err, "failed to list papers")
	}
	themes, err := s.catalog.classifierThemes(ctx)
	if err != nil {
		b.finish(ctx, err)
		return ReanalyzeResult{}, err
	}
	logger.InfoContext(ctx, "reanalyzing papers", "count", len(papers), "run_id", b.RunID())

	var changed []int64
	for _, p := range papers {
		if ctx.Err() != nil {
			break
		}
		key := strconv.FormatInt(p.ID, 10)
		if err := s.reanalyze(ctx, p, &themes); err != nil {
			b.record(ctx, failed(key, p.ID, err), key)
			continue
		}
		changed = append(changed, p.ID)
		b.record(ctx, ItemResult{Key: key, Status: ItemSucceeded, PaperID: p.ID}, key)
	}

	res := ReanalyzeResult{
		RunID:   b.RunID(),
		Summary: b.finish(ctx, nil),
		Results: b.results,
		HasMore: len(papers) == limit,
	}
	if len(changed) > 0 {
		s.catalog.Invalidate(ctx)
		s.opts.index(ctx, s.catalog.Papers(), changed...)
	}
	if res.Portfolio, err = s.catalog.Snapshot(ctx); err != nil {
		return ReanalyzeResult{}, err
	}
	return res, nil
}

// reanalyze refreshes the summary and the primary theme of p, creating a
// theme for the research area when nothing fits.
func (s *reanalyzeService) reanalyze(ctx context.Context, p storage.Paper, themes *[]classify.Theme) error {
	r, err := s.analyzer.Reanalyze(ctx, reanalysisText(p))
	if err != nil {
		return err
	}
	d := s.resolver.Resolve(classify.ResolveRequest{
		Area:     r.ResearchArea,
		Keywords: p.Keywords,
		Mode:     classify.Lenient,
		Fallback: classify.FallbackCreateArea,
	}, *themes)
	themeID, _, err := s.catalog.applyDecision(ctx, d, themes)
	if err != nil {
		return err
	}
	return s.store(ctx, p, r.Summary, themeID)
}

func (s *reanalyzeService) One(ctx context.Context, paperID int64) (*storage.Paper, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if err := requirePaperID(paperID); err != nil {
		return nil, err
	}
	if s.analyzer == nil {
		return nil, errNoModel
	}
	p, err := s.catalog.Papers().Get(ctx, paperID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errNoPaper
	}
	if err != nil {
		return nil, WrapError(err, "failed to load paper")
	}

	r, err := s.analyzer.Reanalyze(ctx, reanalysisText(*p))
	if err != nil {
		logger.ErrorContext(ctx, "reanalysis failed", "paper_id", paperID, "error", err)
		return nil, externalError("failed to re-analyze paper", err)
	}

	themes, err := s.catalog.classifierThemes(ctx)
	if err != nil {
		return nil, err
	}
	var themeID int64
	if d, ok := s.resolver.ResolveByName(r.ResearchArea, themes); ok {
		themeID = d.ThemeID
	}
	if err := s.store(ctx, *p, r.Summary, themeID); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx)
	s.opts.index(ctx, s.catalog.Papers(), paperID)

	logger.InfoContext(ctx, "paper reanalyzed", "paper_id", paperID, "theme_id", themeID)
	p, err = s.catalog.Papers().Get(ctx, paperID)
	if err != nil {
		return nil, WrapError(err, "failed to reload paper")
	}
	return p, nil
}

// store writes the new summary and makes themeID the primary theme, keeping
// the paper's other themes after it. A zero themeID leaves themes unchanged.
func (s *reanalyzeService) store(ctx context.Context, p storage.Paper, summary string, themeID int64) error {
	if err := s.catalog.Papers().Update(ctx, p.ID, storage.PaperUpdate{Summary: &summary}); err != nil {
		return WrapError(err, "failed to update summary")
	}
	if themeID == 0 {
		return nil
	}
	ids := []int64{themeID}
	for _, t := range p.Themes {
		if t.ID != themeID {
			ids = append(ids, t.ID)
		}
	}
	if err := s.catalog.Papers().ReplaceThemes(ctx, p.ID, ids); err != nil {
		return WrapError(err, "failed to update themes")
	}
	return nil
}

// reanalysisText is the stored text, or a metadata block when the text is too short.
func reanalysisText(p storage.Paper) string {
	if utf8.RuneCountInString(p.FullText) >= minFullTextChars {
		return p.FullText
	}
	return fmt.Sprintf("Title: %s\nAuthors: %s\nYear: %d\nVenue: %s\nKeywords: %s",
		p.Title, strings.Join(p.Authors, ", "), p.Year, p.Venue, strings.Join(p.Keywords, ", "))
}
