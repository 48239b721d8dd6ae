package sitemap

import (
	"context"
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

var _ CityRowSource = (*RepositoryImpl)(nil)

// CityRowSource pages through clinic rows ordered by state_code then city.
// Successive calls must observe the same ordering, otherwise offsets skip or
// repeat rows.
type CityRowSource interface {
	FetchCityRows(ctx context.Context, offset, limit int) ([]types.ClinicRow, error)
}

// Querier is the part of *pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type RepositoryImpl struct {
	logger  *slog.Logger
	pgpool  Querier
	metrics *metrics.AppMetrics
}

func NewSitemapRepository(pgpool Querier, logger *slog.Logger, m *metrics.AppMetrics) *RepositoryImpl {
	return &RepositoryImpl{
		logger:  logger,
		pgpool:  pgpool,
		metrics: m,
	}
}

// cityRowsQuery orders by id last so rows sharing a city keep their
// position between pages.
func cityRowsQuery(offset, limit int) (string, []interface{}, error) {
	return squirrel.Select("state_code", "city", "updated_at").
		From("clinics").
		OrderBy("state_code ASC", "city ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *RepositoryImpl) FetchCityRows(ctx context.Context, offset, limit int) ([]types.ClinicRow, error) {
	ctx, span := otel.Tracer("SitemapRepo").Start(ctx, "FetchCityRows", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "clinics"),
		attribute.Int("db.offset", offset),
		attribute.Int("db.limit", limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FetchCityRows"), slog.Int("offset", offset), slog.Int("limit", limit))

	query, args, err := cityRowsQuery(offset, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query build failed")
		return nil, fmt.Errorf("failed to build city rows query: %w", err)
	}

	start := time.Now()
	defer func() {
		r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("query", "city_rows")))
	}()

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query city rows", slog.Any("error", err))
		r.recordQueryError(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to query city rows: %w", err)
	}
	defer rows.Close()

	page := make([]types.ClinicRow, 0, limit)
	for rows.Next() {
		var row types.ClinicRow
		if err := rows.Scan(&row.StateCode, &row.City, &row.UpdatedAt); err != nil {
			l.ErrorContext(ctx, "Failed to scan city row", slog.Any("error", err))
			r.recordQueryError(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Row scan failed")
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		page = append(page, row)
	}
	if err := rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating city rows", slog.Any("error", err))
		r.recordQueryError(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	l.DebugContext(ctx, "Fetched city rows", slog.Int("count", len(page)))
	span.SetAttributes(attribute.Int("db.rows", len(page)))
	span.SetStatus(codes.Ok, "City rows fetched")
	return page, nil
}

func (r *RepositoryImpl) recordQueryError(ctx context.Context) {
	r.metrics.DbQueryErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("query", "city_rows")))
}
