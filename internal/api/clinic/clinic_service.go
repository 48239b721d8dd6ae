package clinic

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/derma-clinic-near-me/app/observability/metrics"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/api/schema"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service builds the clinic detail page.
type Service interface {
	// GetClinic returns the page for slug. A non-empty redirectSlug means the
	// caller used a legacy place id URL and should be sent to that slug.
	GetClinic(ctx context.Context, slug string) (page *types.ClinicPage, redirectSlug string, err error)
}

type lookup struct {
	page     *types.ClinicPage
	redirect string
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    Repository
	baseURL string
	cache   *cache.Cache
	metrics *metrics.AppMetrics
}

func NewServiceImpl(repo Repository, baseURL string, ttl time.Duration, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		baseURL: baseURL,
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
	}
}

func (s *ServiceImpl) GetClinic(ctx context.Context, slug string) (*types.ClinicPage, string, error) {
	ctx, span := otel.Tracer("ClinicService").Start(ctx, "GetClinic", trace.WithAttributes(
		attribute.String("clinic.slug", slug),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetClinic"), slog.String("slug", slug))

	if cached, ok := s.cache.Get(slug); ok {
		s.recordLookup(ctx, "hit")
		hit := cached.(lookup)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return hit.page, hit.redirect, nil
	}
	s.recordLookup(ctx, "miss")

	c, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, types.ErrNotFound) && looksLikePlaceID(slug) {
		c, err = s.repo.FindByPlaceID(ctx, slug)
		if err == nil && c.Slug != "" {
			l.InfoContext(ctx, "Redirecting legacy place id URL", slog.String("target", c.Slug))
			s.cache.SetDefault(slug, lookup{redirect: c.Slug})
			span.SetAttributes(attribute.String("clinic.redirect", c.Slug))
			span.SetStatus(codes.Ok, "Redirect")
			return nil, c.Slug, nil
		}
	}
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			span.SetStatus(codes.Ok, "Clinic not found")
			return nil, "", err
		}
		l.ErrorContext(ctx, "Failed to load clinic", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Clinic lookup failed")
		return nil, "", err
	}

	page := s.buildPage(ctx, *c, l)
	s.cache.SetDefault(slug, lookup{page: page})
	span.SetStatus(codes.Ok, "Clinic page built")
	return page, "", nil
}

// buildPage never fails. An unreadable options column is logged and
// treated as absent.
func (s *ServiceImpl) buildPage(ctx context.Context, c types.Clinic, l *slog.Logger) *types.ClinicPage {
	acc, err := NormalizeAccessibility(c.AccessibilityOptions)
	if err != nil {
		l.WarnContext(ctx, "Ignoring accessibility options", slog.Any("error", err))
	}
	pay, err := NormalizePayment(c.PaymentOptions)
	if err != nil {
		l.WarnContext(ctx, "Ignoring payment options", slog.Any("error", err))
	}
	park, err := NormalizeParking(c.ParkingOptions)
	if err != nil {
		l.WarnContext(ctx, "Ignoring parking options", slog.Any("error", err))
	}

	pathSlug := c.Slug
	if pathSlug == "" {
		pathSlug = c.PlaceID
	}
	canonical := CanonicalURL(s.baseURL, pathSlug)

	stateName, stateURL := "State", s.baseURL+"/state/"
	if c.StateCode != nil && *c.StateCode != "" {
		stateName = *c.StateCode
		stateURL += *c.StateCode
	}

	return &types.ClinicPage{
		Clinic:               c,
		AccessibilityOptions: acc,
		PaymentOptions:       pay,
		ParkingOptions:       park,
		Amenities:            BuildAmenityChips(acc, pay, park),
		CanonicalURL:         canonical,
		BackHref:             BackHref(c.StateCode, c.City),
		StructuredData: []any{
			schema.ForClinic(c, canonical),
			schema.Breadcrumbs([]schema.Crumb{
				{Name: "Home", URL: s.baseURL},
				{Name: stateName, URL: stateURL},
				{Name: c.DisplayName, URL: canonical},
			}),
		},
	}
}

func (s *ServiceImpl) recordLookup(ctx context.Context, result string) {
	s.metrics.ClinicCacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
