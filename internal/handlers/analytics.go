package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjohnson15/workoutapp/internal/services"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func AnalyticsRouter(r chi.Router, analytics *services.AnalyticsService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewAnalyticsHandler(analytics)

	r.Use(authMiddleware)
	r.Get("/", handler.Get)
}

// Get summarizes the caller's workout history.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	summary, err := h.analytics.Compute(r.Context(), identity.UserID)
	if err != nil {
		writeServerError(w, r, err, "compute analytics")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
