package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_import_service.go -package=mocks -mock_names=ImportService=MockImportService research-portfolio/internal/service ImportService

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/classify"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
	"research-portfolio/internal/textnorm"
)

const (
	missingAbstract     = "[No abstract available]"
	noAbstractAvailable = "No abstract available"
	abstractSummaryLen  = 300
	reportedRowErrors   = 5
)

// Bibliography export columns.
const (
	colAuthors   = "Authors"
	colTitle     = "Title"
	colYear      = "Year"
	colVenue     = "Source title"
	colDOI       = "DOI"
	colLink      = "Link"
	colAbstract  = "Abstract"
	colKeywords  = "Author Keywords"
	colVolume    = "Volume"
	colIssue     = "Issue"
	colPageStart = "Page start"
	colPageEnd   = "Page end"
)

// ImportRequest is a CSV bibliography upload.
type ImportRequest struct {
	CSV io.Reader
	// ClearExisting deletes every paper first. It is ignored when resuming.
	ClearExisting bool
	RunID         string
}

// RowError is a failed CSV row.
type RowError struct {
	Row   int
	Error string
}

// ImportResult reports a CSV import.
type ImportResult struct {
	RunID     string
	Results   []ItemResult
	Summary   Summary
	Portfolio Portfolio
}

// RowErrors returns the first failed rows.
func (r ImportResult) RowErrors() []RowError {
	out := []RowError{}
	for _, it := range r.Results {
		if it.Status != ItemFailed {
			continue
		}
		row, _ := strconv.Atoi(it.Key)
		out = append(out, RowError{Row: row, Error: it.Error})
		if len(out) == reportedRowErrors {
			break
		}
	}
	return out
}

// ImportService imports papers from bibliography CSV exports.
type ImportService interface {
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
}

// importService implements ImportService.
type importService struct {
	catalog  *Catalog
	batches  storage.BatchStore
	analyzer analysis.Analyzer
	resolver *classify.Resolver
	opts     options
}

// NewImportService creates a new ImportService. A nil analyzer imports rows
// without enrichment.
func NewImportService(catalog *Catalog, batches storage.BatchStore, analyzer analysis.Analyzer, resolver *classify.Resolver, opts ...Option) ImportService {
	return &importService{
		catalog:  catalog,
		batches:  batches,
		analyzer: analyzer,
		resolver: resolver,
		opts:     newOptions(opts),
	}
}

type csvRow struct {
	number int
	fields map[string]string
}

func (r csvRow) get(col string) string {
	return strings.TrimSpace(r.fields[col])
}

// readCSV parses the upload. Rows with fewer fields than the header are
// reported with a nil fields map.
func readCSV(in io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ValidationError{Field: "csvFile", Message: "CSV file is empty"}
	}
	if err != nil {
		return nil, &ValidationError{Field: "csvFile", Message: "Invalid CSV: " + err.Error()}
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []csvRow
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ValidationError{Field: "csvFile", Message: "Invalid CSV: " + err.Error()}
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			n--
			continue
		}
		row := csvRow{number: n}
		if len(rec) >= len(header) {
			row.fields = make(map[string]string, len(header))
			for i, h := range header {
				row.fields[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *importService) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if req.CSV == nil {
		return ImportResult{}, &ValidationError{Field: "csvFile", Message: "No CSV file provided"}
	}
	rows, err := readCSV(req.CSV)
	if err != nil {
		return ImportResult{}, err
	}

	b, err := startBatch(ctx, KindImport, s.batches, s.opts.obs, req.RunID)
	if err != nil {
		return ImportResult{}, err
	}
	if req.ClearExisting && req.RunID == "" {
		if err := s.catalog.Papers().DeleteAll(ctx); err != nil {
			b.finish(ctx, err)
			return ImportResult{}, WrapError(err, "failed to clear papers")
		}
		logger.InfoContext(ctx, "cleared existing papers")
	}
	themes, err := s.catalog.classifierThemes(ctx)
	if err != nil {
		b.finish(ctx, err)
		return ImportResult{}, err
	}

	after := int(b.cursorInt())
	var added []int64
	for _, row := range rows {
		if row.number <= after {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		key := strconv.Itoa(row.number)
		if row.fields == nil {
			b.record(ctx, ItemResult{Key: key, Status: ItemSkipped}, key)
			continue
		}
		id, err := s.importRow(ctx, row, &themes)
		if err != nil {
			b.record(ctx, failed(key, 0, err), key)
			continue
		}
		added = append(added, id)
		b.record(ctx, ItemResult{Key: key, Status: ItemSucceeded, PaperID: id}, key)
	}

	res := ImportResult{RunID: b.RunID(), Summary: b.finish(ctx, nil), Results: b.results}
	if len(added) > 0 || req.ClearExisting {
		s.catalog.Invalidate(ctx)
	}
	s.opts.index(ctx, s.catalog.Papers(), added...)
	if res.Portfolio, err = s.catalog.Snapshot(ctx); err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

func (s *importService) importRow(ctx context.Context, row csvRow, themes *[]classify.Theme) (int64, error) {
	logger := contextutil.LoggerFromContext(ctx)

	title := row.get(colTitle)
	if title == "" {
		return 0, errors.New("missing title")
	}
	year, ok := leadingInt(row.get(colYear))
	if !ok || year <= 0 {
		year = s.opts.now().Year()
	}
	abstract := row.get(colAbstract)
	authorKeywords := textnorm.SplitList(row.get(colKeywords), ";")

	p := &storage.Paper{
		Title:          title,
		Authors:        csvAuthors(row.get(colAuthors)),
		Year:           year,
		Venue:          row.get(colVenue),
		Keywords:       authorKeywords,
		FullText:       abstract,
		DOI:            row.get(colDOI),
		Link:           row.get(colLink),
		Volume:         row.get(colVolume),
		Issue:          row.get(colIssue),
		PageStart:      row.get(colPageStart),
		PageEnd:        row.get(colPageEnd),
		Type:           storage.TypeArticle,
		MetadataSource: storage.SourceCSV,
	}
	usable := abstract != "" && abstract != missingAbstract
	switch {
	case usable:
		p.Summary = textnorm.Truncate(abstract, abstractSummaryLen) + "..."
	default:
		p.Summary = noAbstractAvailable
		if abstract == missingAbstract {
			p.FullText = ""
		}
	}

	var area string
	if usable && s.analyzer != nil {
		enriched, err := s.analyzer.AnalyzeAbstract(ctx, analysis.AbstractInput{
			Title:    p.Title,
			Authors:  row.get(colAuthors),
			Year:     p.Year,
			Venue:    p.Venue,
			Abstract: abstract,
			Keywords: row.get(colKeywords),
		})
		if err != nil {
			logger.WarnContext(ctx, "abstract enrichment failed, keeping CSV metadata", "row", row.number, "error", err)
		} else {
			if enriched.Summary != "" {
				p.Summary = enriched.Summary
			}
			if len(enriched.Keywords) > 0 {
				p.Keywords = enriched.Keywords
			}
			area = enriched.ResearchArea
			p.MetadataSource = storage.SourceModel
		}
	}

	d := s.resolver.Resolve(classify.ResolveRequest{
		Area:              area,
		Keywords:          append(append([]string{}, authorKeywords...), p.Keywords...),
		AuthorKeywords:    authorKeywords,
		Mode:              classify.Strict,
		RefineGenericArea: true,
		Fallback:          classify.FallbackBroadThemes,
	}, *themes)
	themeID, _, err := s.catalog.applyDecision(ctx, d, themes)
	if err != nil {
		return 0, err
	}

	id, err := s.catalog.Papers().Create(ctx, p)
	if err != nil {
		return 0, WrapError(err, "failed to store paper")
	}
	if err := s.catalog.Papers().ReplaceThemes(ctx, id, []int64{themeID}); err != nil {
		return id, WrapError(err, "failed to assign theme")
	}
	return id, nil
}

// csvAuthors splits "Surname, I.; Other, J." into surnames.
func csvAuthors(s string) []string {
	var out []string
	for _, a := range textnorm.SplitList(s, ";") {
		surname, _, _ := strings.Cut(a, ",")
		if surname = strings.TrimSpace(surname); surname != "" {
			out = append(out, surname)
		}
	}
	return out
}
