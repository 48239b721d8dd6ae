package schema

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/derma-clinic-near-me/internal/api"
)

type Handler struct {
	logger  *slog.Logger
	baseURL string
}

func NewHandler(baseURL string, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, baseURL: baseURL}
}

// Organization handles GET /api/v1/site/schema.
func (h *Handler) Organization(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Serving organization schema")
	api.WriteJSONResponse(w, r, http.StatusOK, ForOrganization(h.baseURL))
}
