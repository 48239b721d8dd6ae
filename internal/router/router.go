package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appMiddleware "github.com/FACorreiaa/derma-clinic-near-me/app/middleware"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/clinic"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/schema"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/sitemap"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SitemapHandler     *sitemap.Handler
	ClinicHandler      *clinic.Handler
	SchemaHandler      *schema.Handler
	SitemapCacheMaxAge int
	AllowedOrigins     []string
}

// SetupRouter wires the crawler documents and the JSON API.
// Server-wide middleware (logger, requestID, recoverer) is expected
// to be applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// Crawler documents
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.CacheControl(cfg.SitemapCacheMaxAge))
		r.Get("/sitemap.xml", cfg.SitemapHandler.CitySitemap)
		r.Get("/robots.txt", cfg.SitemapHandler.Robots)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appMiddleware.NoIndex)
		r.Get("/clinics/{slug}", cfg.ClinicHandler.GetClinic)
		r.Get("/site/schema", cfg.SchemaHandler.Organization)
	})

	return r
}
