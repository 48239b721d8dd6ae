package container

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/derma-clinic-near-me/app/db"
	appLogger "github.com/FACorreiaa/derma-clinic-near-me/app/logger"
	"github.com/FACorreiaa/derma-clinic-near-me/app/observability/metrics"
	"github.com/FACorreiaa/derma-clinic-near-me/config"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/clinic"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/schema"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/sitemap"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/router"
)

const devOrigin = "http://localhost:3000"

// DB is what the repositories need from a connection pool.
type DB interface {
	sitemap.Querier
	clinic.Querier
}

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pool           *pgxpool.Pool
	SitemapHandler *sitemap.Handler
	ClinicHandler  *clinic.Handler
	SchemaHandler  *schema.Handler
}

// NewContainer migrates the database, opens the pool and wires every
// handler on top of it.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	// Run migrations before initializing the main pool
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	c := Wire(cfg, logger, pool)
	c.Pool = pool
	return c, nil
}

// Wire builds repositories, services and handlers over db. Metrics must
// already be initialized.
func Wire(cfg *config.Config, logger *slog.Logger, db DB) *Container {
	m := metrics.Get()

	sitemapRepo := sitemap.NewSitemapRepository(db, logger, m)
	sitemapService := sitemap.NewServiceImpl(sitemapRepo, sitemap.Options{
		BaseURL:      cfg.Site.BaseURL,
		PageSize:     cfg.Sitemap.PageSize,
		PageTimeout:  cfg.Sitemap.PageTimeout,
		BuildTimeout: cfg.Sitemap.BuildTimeout,
	}, logger, m)
	sitemapHandler := sitemap.NewHandler(sitemapService, cfg.Site.BaseURL, logger)

	clinicRepo := clinic.NewRepository(db, logger, m)
	clinicService := clinic.NewServiceImpl(clinicRepo, cfg.Site.BaseURL, cfg.Clinics.CacheTTL, logger, m)
	clinicHandler := clinic.NewHandler(clinicService, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		SitemapHandler: sitemapHandler,
		ClinicHandler:  clinicHandler,
		SchemaHandler:  schema.NewHandler(cfg.Site.BaseURL, logger),
	}
}

// Router returns the public HTTP handler with server-wide middleware.
func (c *Container) Router() http.Handler {
	mainRouter := router.SetupRouter(&router.Config{
		SitemapHandler:     c.SitemapHandler,
		ClinicHandler:      c.ClinicHandler,
		SchemaHandler:      c.SchemaHandler,
		SitemapCacheMaxAge: c.Config.Sitemap.CacheMaxAge,
		AllowedOrigins:     []string{c.Config.Site.BaseURL, devOrigin},
	})

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(c.Logger))
	r.Use(middleware.Recoverer)
	if c.Config.Server.Timeout > 0 {
		r.Use(middleware.Timeout(c.Config.Server.Timeout))
	}
	r.Mount("/", mainRouter)
	return r
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
