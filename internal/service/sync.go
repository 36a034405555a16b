package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_sync_service.go -package=mocks -mock_names=SyncService=MockSyncService research-portfolio/internal/service SyncService

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/classify"
	"research-portfolio/internal/cloudstore"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/filematch"
	"research-portfolio/internal/pdftext"
	"research-portfolio/internal/storage"
	"research-portfolio/internal/textnorm"
)

const errNoText = "No text extracted"

// SyncResult reports a sync run.
type SyncResult struct {
	TotalFiles    int
	NewPapers     int
	ThemesCreated int
	// MetadataSource is storage.SourceModel, or storage.SourceFilename when no model is configured.
	MetadataSource string
	Results        []ItemResult
	Summary        Summary
	Portfolio      Portfolio
}

// SkippedNames returns the names of files that were already imported.
func (r SyncResult) SkippedNames() []string {
	var names []string
	for _, it := range r.Results {
		if it.Status == ItemSkipped {
			names = append(names, it.Key)
		}
	}
	return names
}

// CheckResult reports which stored files have no paper yet.
type CheckResult struct {
	TotalFiles   int
	Existing     int
	NewFileNames []string
}

// SyncService imports PDFs from the file store.
type SyncService interface {
	// Sync imports every PDF whose file id is not stored yet. Concurrent calls share one run.
	Sync(ctx context.Context) (SyncResult, error)
	// CheckNew lists the PDFs a sync would import.
	CheckNew(ctx context.Context) (CheckResult, error)
}

// syncService implements SyncService.
type syncService struct {
	catalog  *Catalog
	files    cloudstore.FileStore
	analyzer analysis.Analyzer
	resolver *classify.Resolver
	opts     options
	flight   singleflight.Group
}

// NewSyncService creates a new SyncService. A nil analyzer imports with
// filename-derived metadata; a nil file store fails every call.
func NewSyncService(catalog *Catalog, files cloudstore.FileStore, analyzer analysis.Analyzer, resolver *classify.Resolver, opts ...Option) SyncService {
	return &syncService{
		catalog:  catalog,
		files:    files,
		analyzer: analyzer,
		resolver: resolver,
		opts:     newOptions(opts),
	}
}

func (s *syncService) Sync(ctx context.Context) (SyncResult, error) {
	return runShared(ctx, &s.flight, KindSync, s.sync)
}

func (s *syncService) sync(ctx context.Context) (SyncResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if s.files == nil {
		return SyncResult{}, errNoFileStore
	}

	files, err := s.files.ListPDFs(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list files", "store", s.files.Name(), "error", err)
		return SyncResult{}, externalError("failed to list files", err)
	}
	known, err := s.catalog.Papers().FileIDs(ctx)
	if err != nil {
		return SyncResult{}, WrapError(err, "failed to load stored file ids")
	}
	themes, err := s.catalog.classifierThemes(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	res := SyncResult{TotalFiles: len(files), MetadataSource: storage.SourceModel}
	if s.analyzer == nil {
		res.MetadataSource = storage.SourceFilename
		logger.WarnContext(ctx, "no model configured, using filename metadata")
	}

	b, _ := startBatch(ctx, KindSync, nil, s.opts.obs, "")
	var added []int64
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		if _, ok := known[f.ID]; ok {
			b.record(ctx, ItemResult{Key: f.Name, Status: ItemSkipped}, "")
			continue
		}
		id, created, err := s.importFile(ctx, f, &themes)
		if err != nil {
			b.record(ctx, failed(f.Name, 0, err), "")
			continue
		}
		known[f.ID] = struct{}{}
		added = append(added, id)
		if created {
			res.ThemesCreated++
		}
		b.record(ctx, ItemResult{Key: f.Name, Status: ItemSucceeded, PaperID: id}, "")
	}
	res.Summary = b.finish(ctx, nil)
	res.Results = b.results
	res.NewPapers = len(added)

	if len(added) > 0 {
		s.catalog.Invalidate(ctx)
		s.opts.index(ctx, s.catalog.Papers(), added...)
	}
	if res.Portfolio, err = s.catalog.Snapshot(ctx); err != nil {
		return SyncResult{}, err
	}
	return res, nil
}

// importFile stores one PDF as a paper. It returns the paper id and whether a theme was created.
func (s *syncService) importFile(ctx context.Context, f cloudstore.File, themes *[]classify.Theme) (int64, bool, error) {
	data, err := s.files.Download(ctx, f.Path)
	if err != nil {
		return 0, false, WrapError(err, "failed to download")
	}
	text, err := s.opts.extract(data)
	if errors.Is(err, pdftext.ErrNoText) || (err == nil && text == "") {
		return 0, false, errors.New(errNoText)
	}
	if err != nil {
		return 0, false, err
	}

	p := &storage.Paper{
		FullText: textnorm.Truncate(text, pdftext.MaxStoredChars),
		DOI:      pdftext.FindDOI(text),
		Type:     storage.TypeArticle,
		FileID:   f.ID,
		FilePath: f.PathLower,
	}
	var area string
	var classifyKeywords []string
	if s.analyzer != nil {
		meta, err := s.analyzer.AnalyzeDocument(ctx, text, f.Name)
		if err != nil {
			return 0, false, err
		}
		p.Title, p.Authors, p.Year, p.Venue = meta.Title, meta.Authors, meta.Year, meta.Venue
		p.Summary, p.Keywords = meta.Summary, meta.Keywords
		p.MetadataSource = storage.SourceModel
		area, classifyKeywords = meta.ResearchArea, meta.Keywords
	} else {
		meta := filematch.ParseFilename(f.Name)
		p.Title, p.Authors, p.Year = meta.Title, meta.Authors, meta.Year
		if len(p.Authors) == 0 {
			p.Authors = []string{filematch.UnknownAuthor}
		}
		if p.Year == 0 {
			p.Year = s.opts.now().Year()
		}
		p.MetadataSource = storage.SourceFilename
		classifyKeywords = textnorm.SignificantWords(meta.Title, 3, textnorm.TitleStopWords)
	}

	d := s.resolver.Resolve(classify.ResolveRequest{
		Area:     area,
		Keywords: classifyKeywords,
		Mode:     classify.Lenient,
		Fallback: classify.FallbackCreateArea,
	}, *themes)
	themeID, created, err := s.catalog.applyDecision(ctx, d, themes)
	if err != nil {
		return 0, false, err
	}

	id, err := s.catalog.Papers().Create(ctx, p)
	if err != nil {
		return 0, false, WrapError(err, "failed to store paper")
	}
	if err := s.catalog.Papers().ReplaceThemes(ctx, id, []int64{themeID}); err != nil {
		return id, created, WrapError(err, "failed to assign theme")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "imported file",
		"file", f.Name, "paper_id", id, "theme_id", themeID, "reason", d.Reason, "source", p.MetadataSource)
	return id, created, nil
}

func (s *syncService) CheckNew(ctx context.Context) (CheckResult, error) {
	if s.files == nil {
		return CheckResult{}, errNoFileStore
	}
	files, err := s.files.ListPDFs(ctx)
	if err != nil {
		return CheckResult{}, externalError("failed to list files", err)
	}
	known, err := s.catalog.Papers().FileIDs(ctx)
	if err != nil {
		return CheckResult{}, WrapError(err, "failed to load stored file ids")
	}
	res := CheckResult{TotalFiles: len(files), Existing: len(known), NewFileNames: []string{}}
	for _, f := range files {
		if _, ok := known[f.ID]; !ok {
			res.NewFileNames = append(res.NewFileNames, f.Name)
		}
	}
	return res, nil
}
