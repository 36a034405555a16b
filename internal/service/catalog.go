package service

import (
	"context"
	"time"

	"research-portfolio/internal/cache"
	"research-portfolio/internal/classify"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
)

// Cache keys.
const (
	portfolioKey = "papers"
	statsKey     = "stats"
)

// Portfolio is the full listing served to the site.
type Portfolio struct {
	Papers []storage.Paper
	Themes []storage.Theme
}

// Stats holds the record counts.
type Stats struct {
	Papers int
	Themes int
}

// CacheObserver records cache hits and misses.
type CacheObserver interface {
	ObserveCache(hit bool)
}

// Catalog reads the portfolio through the cache and invalidates it after writes.
type Catalog struct {
	papers storage.PaperStore
	themes storage.ThemeStore
	cache  cache.Cache
	ttl    time.Duration
	obs    CacheObserver
}

// NewCatalog creates a Catalog. A nil cache disables caching.
func NewCatalog(papers storage.PaperStore, themes storage.ThemeStore, c cache.Cache, ttl time.Duration) *Catalog {
	if c == nil {
		c = cache.Nop{}
	}
	return &Catalog{papers: papers, themes: themes, cache: c, ttl: ttl}
}

// WithCacheObserver records cache lookups on obs.
func (c *Catalog) WithCacheObserver(obs CacheObserver) *Catalog {
	c.obs = obs
	return c
}

// Papers returns the paper store.
func (c *Catalog) Papers() storage.PaperStore {
	return c.papers
}

// Themes returns the theme store.
func (c *Catalog) Themes() storage.ThemeStore {
	return c.themes
}

// Snapshot returns every paper and every theme with counts.
func (c *Catalog) Snapshot(ctx context.Context) (Portfolio, error) {
	var p Portfolio
	loaded := false
	err := c.cache.GetOrSet(ctx, portfolioKey, &p, c.ttl, func(ctx context.Context) (any, error) {
		loaded = true
		return c.load(ctx)
	})
	c.observe(!loaded)
	if err != nil {
		return Portfolio{}, WrapError(err, "failed to load portfolio")
	}
	return p, nil
}

func (c *Catalog) load(ctx context.Context) (Portfolio, error) {
	papers, err := c.papers.List(ctx)
	if err != nil {
		return Portfolio{}, err
	}
	themes, err := c.themes.ListWithCounts(ctx)
	if err != nil {
		return Portfolio{}, err
	}
	return Portfolio{Papers: papers, Themes: themes}, nil
}

// Stats returns the paper and theme counts.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	loaded := false
	err := c.cache.GetOrSet(ctx, statsKey, &st, c.ttl, func(ctx context.Context) (any, error) {
		loaded = true
		papers, err := c.papers.Count(ctx)
		if err != nil {
			return nil, err
		}
		themes, err := c.themes.Count(ctx)
		if err != nil {
			return nil, err
		}
		return Stats{Papers: papers, Themes: themes}, nil
	})
	c.observe(!loaded)
	if err != nil {
		return Stats{}, WrapError(err, "failed to count records")
	}
	return st, nil
}

// Invalidate drops cached listings. Failures are logged; the entries expire on their own.
func (c *Catalog) Invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx, portfolioKey, statsKey); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to invalidate cache", "error", err)
	}
}

func (c *Catalog) observe(hit bool) {
	if c.obs != nil {
		c.obs.ObserveCache(hit)
	}
}

// classifierThemes loads every stored theme in the classifier's shape.
func (c *Catalog) classifierThemes(ctx context.Context) ([]classify.Theme, error) {
	themes, err := c.themes.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list themes")
	}
	return toClassifierThemes(themes), nil
}

func toClassifierThemes(themes []storage.Theme) []classify.Theme {
	out := make([]classify.Theme, len(themes))
	for i, t := range themes {
		out[i] = classify.Theme{ID: t.ID, Name: t.Name, Description: t.Description}
	}
	return out
}

// applyDecision returns the theme id for d, creating the proposed theme when
// needed. created reports whether a new theme was stored. themes is extended
// with the new theme so later items in a batch see it.
func (c *Catalog) applyDecision(ctx context.Context, d classify.Decision, themes *[]classify.Theme) (id int64, created bool, err error) {
	if d.Create == nil {
		return d.ThemeID, false, nil
	}
	t, err := c.themes.GetOrCreate(ctx, storage.Theme{Name: d.Create.Name, Description: d.Create.Description, Color: d.Create.Color})
	if err != nil {
		return 0, false, WrapError(err, "failed to create theme")
	}
	for _, existing := range *themes {
		if existing.ID == t.ID {
			return t.ID, false, nil
		}
	}
	*themes = append(*themes, classify.Theme{ID: t.ID, Name: t.Name, Description: t.Description})
	return t.ID, true, nil
}
