package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SitemapRequestsTotal        metric.Int64Counter
	SitemapBuildDurationSeconds metric.Float64Histogram
	SitemapURLs                 metric.Int64Histogram
	SitemapPageReadErrorsTotal  metric.Int64Counter
	DbQueryDurationSeconds      metric.Float64Histogram
	DbQueryErrorsTotal          metric.Int64Counter
	ClinicCacheLookupsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Call it after the provider is installed, otherwise instruments are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("DermaClinicNearMe")
		var err error
		m := &AppMetrics{}

		m.SitemapRequestsTotal, err = meter.Int64Counter(
			"sitemap_requests_total",
			metric.WithDescription("Total number of sitemap documents built"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create sitemap_requests_total: %v", err)
		}

		m.SitemapBuildDurationSeconds, err = meter.Float64Histogram(
			"sitemap_build_duration_seconds",
			metric.WithDescription("Duration of sitemap builds in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create sitemap_build_duration_seconds: %v", err)
		}

		m.SitemapURLs, err = meter.Int64Histogram(
			"sitemap_urls",
			metric.WithDescription("Number of <url> entries per sitemap document"),
			metric.WithUnit("{url}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create sitemap_urls: %v", err)
		}

		m.SitemapPageReadErrorsTotal, err = meter.Int64Counter(
			"sitemap_page_read_errors_total",
			metric.WithDescription("Page reads that ended a sitemap scan early"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create sitemap_page_read_errors_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		m.ClinicCacheLookupsTotal, err = meter.Int64Counter(
			"clinic_cache_lookups_total",
			metric.WithDescription("Clinic detail cache lookups, labelled by hit"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create clinic_cache_lookups_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
