package clinic

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/derma-clinic-near-me/internal/api"
	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// GetClinic handles GET /api/v1/clinics/{slug}.
func (h *Handler) GetClinic(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ClinicHandler").Start(r.Context(), "GetClinic")
	defer span.End()

	slug := chi.URLParam(r, "slug")
	span.SetAttributes(attribute.String("clinic.slug", slug))
	l := h.logger.With(slog.String("method", "GetClinic"), slog.String("slug", slug))

	if slug == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing clinic slug")
		return
	}

	page, redirectSlug, err := h.service.GetClinic(ctx, slug)
	switch {
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Clinic not found")
		return
	case err != nil:
		l.ErrorContext(ctx, "Failed to get clinic", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load clinic")
		return
	case redirectSlug != "":
		http.Redirect(w, r, "/api/v1/clinics/"+url.PathEscape(redirectSlug), http.StatusMovedPermanently)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, page)
}
