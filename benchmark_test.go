package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/derma-clinic-near-me/app/observability/metrics"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/clinic"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/schema"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/sitemap"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/router"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

// memorySource serves a fixed clinic table with offset/limit paging.
type memorySource struct {
	rows []types.ClinicRow
}

func (m *memorySource) FetchCityRows(_ context.Context, offset, limit int) ([]types.ClinicRow, error) {
	if offset >= len(m.rows) {
		return nil, nil
	}
	end := min(offset+limit, len(m.rows))
	return m.rows[offset:end], nil
}

type memoryClinics map[string]*types.Clinic

func (m memoryClinics) FindBySlug(_ context.Context, slug string) (*types.Clinic, error) {
	if c, ok := m[slug]; ok {
		return c, nil
	}
	return nil, types.ErrNotFound
}

func (m memoryClinics) FindByPlaceID(context.Context, string) (*types.Clinic, error) {
	return nil, types.ErrNotFound
}

// newBenchmarkRouter builds a router over n clinics spread across n/4 cities.
func newBenchmarkRouter(n int) chi.Router {
	metrics.InitAppMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
	updated := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]types.ClinicRow, 0, n)
	for i := 0; i < n; i++ {
		state := fmt.Sprintf("S%02d", i%50)
		city := fmt.Sprintf("City %d", i/4)
		rows = append(rows, types.ClinicRow{StateCode: &state, City: &city, UpdatedAt: &updated})
	}

	sitemapService := sitemap.NewServiceImpl(&memorySource{rows: rows}, sitemap.Options{
		BaseURL:      "https://bench.test",
		PageSize:     1000,
		PageTimeout:  time.Second,
		BuildTimeout: 10 * time.Second,
	}, logger, metrics.Get())

	city, state := "Austin", "TX"
	clinics := memoryClinics{"austin-skin": {Slug: "austin-skin", DisplayName: "Austin Skin", City: &city, StateCode: &state}}
	clinicService := clinic.NewServiceImpl(clinics, "https://bench.test", time.Hour, logger, metrics.Get())

	return router.SetupRouter(&router.Config{
		SitemapHandler:     sitemap.NewHandler(sitemapService, "https://bench.test", logger),
		ClinicHandler:      clinic.NewHandler(clinicService, logger),
		SchemaHandler:      schema.NewHandler("https://bench.test", logger),
		SitemapCacheMaxAge: 86400,
	})
}

func benchmarkGet(b *testing.B, r http.Handler, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}

func BenchmarkCitySitemap1k(b *testing.B) {
	benchmarkGet(b, newBenchmarkRouter(1_000), "/sitemap.xml")
}

func BenchmarkCitySitemap50k(b *testing.B) {
	benchmarkGet(b, newBenchmarkRouter(50_000), "/sitemap.xml")
}

func BenchmarkRobots(b *testing.B) {
	benchmarkGet(b, newBenchmarkRouter(0), "/robots.txt")
}

func BenchmarkClinicDetailCached(b *testing.B) {
	benchmarkGet(b, newBenchmarkRouter(0), "/api/v1/clinics/austin-skin")
}

func BenchmarkSlugify(b *testing.B) {
	names := []string{"San Francisco", "St. Paul's & Rochester", "Winston-Salem", "Coeur d'Alene"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sitemap.Slugify(names[i%len(names)])
	}
}
