package sitemap

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/derma-clinic-near-me/app/observability/metrics"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

const defaultPageSize = 1000

var _ Service = (*ServiceImpl)(nil)

// Service builds crawler-facing documents.
type Service interface {
	BuildCitySitemap(ctx context.Context) *CitySitemap
}

// CitySitemap is a rendered sitemap plus what it took to build it.
type CitySitemap struct {
	XML       string
	URLCount  int
	PagesRead int
	// Partial is set when a page read failed and later rows were never seen.
	Partial bool
}

type Options struct {
	BaseURL      string
	PageSize     int
	PageTimeout  time.Duration
	BuildTimeout time.Duration
}

type ServiceImpl struct {
	logger  *slog.Logger
	source  CityRowSource
	opts    Options
	metrics *metrics.AppMetrics
	now     func() time.Time
}

func NewServiceImpl(source CityRowSource, opts Options, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	return &ServiceImpl{
		logger:  logger,
		source:  source,
		opts:    opts,
		metrics: m,
		now:     time.Now,
	}
}

// BuildCitySitemap scans every clinic row once and renders one URL per city.
// A failed page read ends the scan; whatever was collected is still rendered.
func (s *ServiceImpl) BuildCitySitemap(ctx context.Context) *CitySitemap {
	ctx, span := otel.Tracer("SitemapService").Start(ctx, "BuildCitySitemap", trace.WithAttributes(
		attribute.Int("sitemap.page_size", s.opts.PageSize),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "BuildCitySitemap"))
	start := time.Now()

	if s.opts.BuildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.BuildTimeout)
		defer cancel()
	}

	idx := newCityIndex()
	pages, partial := s.scan(ctx, idx, l)

	doc := &CitySitemap{
		XML:       renderCitySitemap(s.opts.BaseURL, idx.cities, s.now()),
		URLCount:  idx.len(),
		PagesRead: pages,
		Partial:   partial,
	}

	attrs := metric.WithAttributes(attribute.Bool("partial", partial))
	s.metrics.SitemapRequestsTotal.Add(ctx, 1, attrs)
	s.metrics.SitemapBuildDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	s.metrics.SitemapURLs.Record(ctx, int64(doc.URLCount), attrs)

	span.SetAttributes(
		attribute.Int("sitemap.urls", doc.URLCount),
		attribute.Int("sitemap.pages", pages),
		attribute.Bool("sitemap.partial", partial),
	)
	if partial {
		span.SetStatus(codes.Error, "Sitemap built from partial data")
	} else {
		span.SetStatus(codes.Ok, "Sitemap built")
	}

	l.InfoContext(ctx, "City sitemap built",
		slog.Int("urls", doc.URLCount),
		slog.Int("pages", pages),
		slog.Bool("partial", partial),
		slog.Duration("duration", time.Since(start)),
	)
	return doc
}

// scan reads pages in order until a short page or a read error.
func (s *ServiceImpl) scan(ctx context.Context, idx *cityIndex, l *slog.Logger) (pages int, partial bool) {
	span := trace.SpanFromContext(ctx)
	for offset := 0; ; offset += s.opts.PageSize {
		rows, err := s.fetchPage(ctx, offset)
		pages++
		if err != nil {
			l.ErrorContext(ctx, "sitemap cities query error, serving partial sitemap",
				slog.Int("offset", offset),
				slog.Int("cities_so_far", idx.len()),
				slog.Any("error", err),
			)
			s.metrics.SitemapPageReadErrorsTotal.Add(ctx, 1)
			span.RecordError(err)
			return pages, true
		}

		for _, row := range rows {
			idx.add(row)
		}

		if len(rows) < s.opts.PageSize {
			return pages, false
		}
	}
}

func (s *ServiceImpl) fetchPage(ctx context.Context, offset int) ([]types.ClinicRow, error) {
	if s.opts.PageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.PageTimeout)
		defer cancel()
	}
	return s.source.FetchCityRows(ctx, offset, s.opts.PageSize)
}
