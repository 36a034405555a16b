// Package app wires configuration into the stores, integrations and services
// shared by the API server and the operator CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/cache"
	"research-portfolio/internal/classify"
	"research-portfolio/internal/cloudstore"
	"research-portfolio/internal/config"
	"research-portfolio/internal/handlers"
	apphttp "research-portfolio/internal/http"
	"research-portfolio/internal/indexer"
	"research-portfolio/internal/llm"
	"research-portfolio/internal/metrics"
	"research-portfolio/internal/rag"
	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
	"research-portfolio/internal/vectorstore"
)

// App holds the wired services. Optional integrations are nil when unconfigured.
type App struct {
	Config  *config.Config
	DB      *storage.DB
	Metrics *metrics.Metrics
	Profile *analysis.Profile
	Catalog *service.Catalog

	Files    cloudstore.FileStore
	Analyzer analysis.Analyzer
	Vectors  *vectorstore.QdrantStore
	Indexer  *indexer.Pipeline

	Papers      service.PaperService
	Sync        service.SyncService
	Reanalyze   service.ReanalyzeService
	Maintenance service.MaintenanceService
	Imports     service.ImportService
	FileLinks   service.FileService
	QA          service.QAService
	Auth        service.AuthService

	closers []io.Closer
}

// NewLogger builds the process logger from the configured level and format.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// New opens the database, applies migrations and builds every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Metrics: metrics.New()}
	if err := a.wire(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg := a.Config
	logger := slog.Default()

	db, err := storage.New(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db)
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database initialized", "driver", cfg.DBDriver)

	if a.Profile, err = analysis.LoadProfile(cfg.SiteProfilePath); err != nil {
		return err
	}

	var listingCache cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.Open(ctx, cfg.RedisURL, cache.WithPrefix("portfolio:"), cache.WithDefaultTTL(cfg.CacheTTL))
		if err != nil {
			return err
		}
		a.closers = append(a.closers, rc)
		listingCache = rc
		logger.Info("Redis cache enabled", "ttl", cfg.CacheTTL)
	}
	a.Catalog = service.NewCatalog(
		storage.NewPaperRepo(db.DB),
		storage.NewThemeRepo(db.DB),
		listingCache,
		cfg.CacheTTL,
	).WithCacheObserver(a.Metrics)

	files, err := cloudstore.Open(cloudstore.Config{
		Kind:         cfg.FileStore,
		DropboxToken: cfg.DropboxAccessToken,
		DropboxRoot:  cfg.DropboxRoot,
		S3Endpoint:   cfg.S3Endpoint,
		S3Bucket:     cfg.S3Bucket,
		S3AccessKey:  cfg.S3AccessKey,
		S3SecretKey:  cfg.S3SecretKey,
		S3UseSSL:     cfg.S3UseSSL,
		LocalDir:     cfg.LocalPDFDir,
	})
	if err != nil {
		return fmt.Errorf("failed to open file store: %w", err)
	}
	if files != nil {
		a.Files = files
		logger.Info("File store configured", "kind", cfg.FileStore)
	} else {
		logger.Warn("File store not configured", "kind", cfg.FileStore)
	}

	if cfg.AnthropicAPIKey != "" {
		client := llm.NewClient(cfg.AnthropicAPIKey,
			llm.WithBaseURL(cfg.AnthropicBaseURL),
			llm.WithModel(cfg.AnthropicModel),
			llm.WithRateLimit(cfg.LLMRatePerSec),
			llm.WithObserver(a.Metrics.ObserveModelCall),
		)
		analyzer, err := analysis.NewClaudeAnalyzer(client, a.Profile)
		if err != nil {
			return err
		}
		a.Analyzer = analyzer
		logger.Info("Model configured", "model", cfg.AnthropicModel)
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, model features disabled")
	}

	var embedder *llm.EmbeddingsClient
	if cfg.SemanticEnabled() {
		vectors, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			return err
		}
		a.Vectors = vectors
		a.closers = append(a.closers, vectors)
		if err := vectors.EnsureCollection(ctx, cfg.QdrantVectorSize); err != nil {
			return fmt.Errorf("failed to ensure Qdrant collection: %w", err)
		}
		embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		a.Indexer = indexer.NewPipeline(embedder, vectors)
		logger.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}

	a.Auth, err = service.NewAuthService(cfg.AdminPassword, []byte(cfg.AdminTokenSecret), cfg.AdminTokenTTL)
	if err != nil {
		return err
	}

	resolver := classify.NewResolver(classify.Default())
	batches := storage.NewBatchRepo(db.DB)
	opts := []service.Option{service.WithBatchObserver(a.Metrics)}
	var retrieverOpts []rag.Option
	if a.Indexer != nil {
		opts = append(opts, service.WithIndexer(a.Indexer))
		retrieverOpts = append(retrieverOpts, rag.WithSemantic(embedder, a.Vectors))
	}

	a.Papers = service.NewPaperService(a.Catalog, resolver, opts...)
	a.Sync = service.NewSyncService(a.Catalog, a.Files, a.Analyzer, resolver, opts...)
	a.Reanalyze = service.NewReanalyzeService(a.Catalog, batches, a.Analyzer, resolver, opts...)
	a.Maintenance = service.NewMaintenanceService(a.Catalog, resolver, opts...)
	a.Imports = service.NewImportService(a.Catalog, batches, a.Analyzer, resolver, opts...)
	a.FileLinks = service.NewFileService(a.Catalog, a.Files)
	a.QA = service.NewQAService(rag.NewEngine(a.Catalog.Papers(), retrieverOpts...), a.Analyzer, a.Catalog)
	return nil
}

// RouterDeps returns the HTTP router dependencies.
func (a *App) RouterDeps() *apphttp.Deps {
	var vectors handlers.Pinger
	if a.Vectors != nil {
		vectors = a.Vectors
	}
	return &apphttp.Deps{
		Papers:      a.Papers,
		Sync:        a.Sync,
		Reanalyze:   a.Reanalyze,
		Maintenance: a.Maintenance,
		Imports:     a.Imports,
		Files:       a.FileLinks,
		QA:          a.QA,
		Auth:        a.Auth,
		Profile:     a.Profile,
		Health:      handlers.NewHealthHandler(handlers.PingFunc(a.DB.PingContext), vectors, a.Analyzer != nil, a.Files != nil),
		Metrics:     a.Metrics,
	}
}

// Close releases every opened resource in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
