package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_maintenance_service.go -package=mocks -mock_names=MaintenanceService=MockMaintenanceService research-portfolio/internal/service MaintenanceService

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"

	"research-portfolio/internal/classify"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
)

// ConsolidateResult reports a theme consolidation.
type ConsolidateResult struct {
	ThemeCount int
	Results    []ItemResult
	Summary    Summary
	Portfolio  Portfolio
}

// MaintenanceService runs destructive whole-catalog operations.
type MaintenanceService interface {
	// Consolidate replaces every theme with the consolidated set and reassigns every paper.
	Consolidate(ctx context.Context) (ConsolidateResult, error)
	// RepairArrays flattens double-nested author and keyword lists. It returns the number of papers fixed.
	RepairArrays(ctx context.Context) (int, error)
}

// maintenanceService implements MaintenanceService.
type maintenanceService struct {
	catalog  *Catalog
	resolver *classify.Resolver
	opts     options
	flight   singleflight.Group
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(catalog *Catalog, resolver *classify.Resolver, opts ...Option) MaintenanceService {
	return &maintenanceService{catalog: catalog, resolver: resolver, opts: newOptions(opts)}
}

func (s *maintenanceService) Consolidate(ctx context.Context) (ConsolidateResult, error) {
	return runShared(ctx, &s.flight, KindConsolidate, s.consolidate)
}

func (s *maintenanceService) consolidate(ctx context.Context) (ConsolidateResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	target := s.resolver.ConsolidatedThemes()
	fresh := make([]storage.Theme, len(target))
	for i, t := range target {
		fresh[i] = storage.Theme{Name: t.Name, Description: t.Description, Color: t.Color}
	}
	created, err := s.catalog.Themes().ReplaceAll(ctx, fresh)
	if err != nil {
		return ConsolidateResult{}, WrapError(err, "failed to replace themes")
	}
	s.catalog.Invalidate(ctx)
	logger.InfoContext(ctx, "installed consolidated themes", "count", len(created))

	byName := make(map[string]int64, len(created))
	for _, t := range created {
		byName[t.Name] = t.ID
	}

	papers, err := s.catalog.Papers().List(ctx)
	if err != nil {
		return ConsolidateResult{}, WrapError(err, "failed to list papers")
	}

	b, _ := startBatch(ctx, KindConsolidate, nil, s.opts.obs, "")
	var changed []int64
	for _, p := range papers {
		if ctx.Err() != nil {
			break
		}
		key := strconv.FormatInt(p.ID, 10)
		name := s.resolver.ConsolidatedThemeFor(p.Title, p.Keywords, p.Summary)
		id, ok := byName[name]
		if !ok {
			b.record(ctx, failed(key, p.ID, fmt.Errorf("theme %q was not created", name)), key)
			continue
		}
		if err := s.catalog.Papers().ReplaceThemes(ctx, p.ID, []int64{id}); err != nil {
			b.record(ctx, failed(key, p.ID, err), key)
			continue
		}
		changed = append(changed, p.ID)
		b.record(ctx, ItemResult{Key: key, Status: ItemSucceeded, PaperID: p.ID}, key)
	}

	res := ConsolidateResult{ThemeCount: len(created), Summary: b.finish(ctx, nil), Results: b.results}
	s.catalog.Invalidate(ctx)
	s.opts.index(ctx, s.catalog.Papers(), changed...)
	if res.Portfolio, err = s.catalog.Snapshot(ctx); err != nil {
		return ConsolidateResult{}, err
	}
	return res, nil
}

func (s *maintenanceService) RepairArrays(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	rows, err := s.catalog.Papers().RawLists(ctx)
	if err != nil {
		return 0, WrapError(err, "failed to read stored lists")
	}
	fixed := 0
	for _, r := range rows {
		authorsNested := storage.IsDoubleNested(r.Authors)
		keywordsNested := storage.IsDoubleNested(r.Keywords)
		if !authorsNested && !keywordsNested {
			continue
		}
		authors, keywords := r.Authors, r.Keywords
		if authorsNested {
			authors = storage.EncodeList(storage.DecodeList(r.Authors, false))
		}
		if keywordsNested {
			keywords = storage.EncodeList(storage.DecodeList(r.Keywords, false))
		}
		if err := s.catalog.Papers().SetRawLists(ctx, r.ID, authors, keywords); err != nil {
			return fixed, WrapError(err, fmt.Sprintf("failed to repair paper %d", r.ID))
		}
		fixed++
	}
	if fixed > 0 {
		s.catalog.Invalidate(ctx)
	}
	logger.InfoContext(ctx, "repaired list columns", "papers", fixed)
	return fixed, nil
}
