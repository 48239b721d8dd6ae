package clinic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/derma-clinic-near-me/app/observability/metrics"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the interface for clinic lookups.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*types.Clinic, error)
	FindByPlaceID(ctx context.Context, placeID string) (*types.Clinic, error)
}

// Querier is the part of *pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type RepositoryImpl struct {
	logger  *slog.Logger
	pgpool  Querier
	metrics *metrics.AppMetrics
}

func NewRepository(pgpool Querier, logger *slog.Logger, m *metrics.AppMetrics) *RepositoryImpl {
	return &RepositoryImpl{
		logger:  logger,
		pgpool:  pgpool,
		metrics: m,
	}
}

var clinicColumns = []string{
	"id", "place_id", "COALESCE(slug, '')", "display_name",
	"formatted_address", "city", "state_code", "postal_code",
	"phone", "website", "rating", "user_rating_count",
	"latitude", "longitude", "current_open_now",
	"accessibility_options", "payment_options", "parking_options",
	"updated_at",
}

func clinicByColumnQuery(column, value string) (string, []interface{}, error) {
	return squirrel.Select(clinicColumns...).
		From("clinics").
		Where(squirrel.Eq{column: value}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *RepositoryImpl) FindBySlug(ctx context.Context, slug string) (*types.Clinic, error) {
	return r.findBy(ctx, "slug", slug)
}

func (r *RepositoryImpl) FindByPlaceID(ctx context.Context, placeID string) (*types.Clinic, error) {
	return r.findBy(ctx, "place_id", placeID)
}

func (r *RepositoryImpl) findBy(ctx context.Context, column, value string) (*types.Clinic, error) {
	ctx, span := otel.Tracer("ClinicRepo").Start(ctx, "FindClinic", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "clinics"),
		attribute.String("db.lookup_column", column),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindClinic"), slog.String(column, value))
	queryName := "clinic_by_" + column

	query, args, err := clinicByColumnQuery(column, value)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query build failed")
		return nil, fmt.Errorf("failed to build clinic query: %w", err)
	}

	start := time.Now()
	defer func() {
		r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("query", queryName)))
	}()

	var c types.Clinic
	err = r.pgpool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.PlaceID, &c.Slug, &c.DisplayName,
		&c.FormattedAddress, &c.City, &c.StateCode, &c.PostalCode,
		&c.Phone, &c.Website, &c.Rating, &c.UserRatingCount,
		&c.Latitude, &c.Longitude, &c.CurrentOpenNow,
		&c.AccessibilityOptions, &c.PaymentOptions, &c.ParkingOptions,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.DebugContext(ctx, "Clinic not found")
			span.SetStatus(codes.Ok, "Clinic not found")
			return nil, types.ErrNotFound
		}
		l.ErrorContext(ctx, "Failed to fetch clinic", slog.Any("error", err))
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("query", queryName)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to fetch clinic by %s: %w", column, err)
	}

	span.SetAttributes(attribute.String("clinic.id", c.ID.String()))
	span.SetStatus(codes.Ok, "Clinic found")
	return &c, nil
}
