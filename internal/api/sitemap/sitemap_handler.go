package sitemap

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type Handler struct {
	logger  *slog.Logger
	service Service
	baseURL string
}

func NewHandler(service Service, baseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		baseURL: baseURL,
	}
}

// CitySitemap handles GET /sitemap.xml. It always answers 200; a failed
// scan degrades to a partial document.
func (h *Handler) CitySitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SitemapHandler").Start(r.Context(), "CitySitemap")
	defer span.End()

	l := h.logger.With(slog.String("method", "CitySitemap"))

	doc := h.service.BuildCitySitemap(ctx)
	span.SetAttributes(attribute.Bool("sitemap.partial", doc.Partial))

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc.XML)); err != nil {
		l.ErrorContext(ctx, "Failed to write sitemap response", slog.Any("error", err))
		span.RecordError(err)
	}
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(RenderRobots(h.baseURL))); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write robots response", slog.Any("error", err))
	}
}
