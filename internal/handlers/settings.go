package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/types"
)

// PlanHandler serves user settings and today's plan.
type PlanHandler struct {
	plans *services.PlanService
}

func NewPlanHandler(plans *services.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// SettingsRouter registers the settings routes.
func SettingsRouter(r chi.Router, plans *services.PlanService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPlanHandler(plans)

	r.Use(authMiddleware)
	r.Get("/", handler.GetSettings)
	r.Put("/", handler.UpdateSettings)
}

// PlanRouter registers the plan routes.
func PlanRouter(r chi.Router, plans *services.PlanService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPlanHandler(plans)

	r.Use(authMiddleware)
	r.Get("/today", handler.Today)
}

func (h *PlanHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	settings, err := h.plans.GetSettings(r.Context(), identity.UserID)
	if err != nil {
		writeServerError(w, r, err, "get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *PlanHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var settings types.UserSettings
	if err := decodeJSON(r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for day := range settings.WeeklyPlan {
		if !day.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown weekday: "+string(day))
			return
		}
	}

	updated, err := h.plans.UpdateSettings(r.Context(), identity.UserID, settings)
	if err != nil {
		writeServerError(w, r, err, "update settings")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PlanHandler) Today(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	plan, err := h.plans.ResolveToday(r.Context(), identity.UserID)
	if err != nil {
		writeServerError(w, r, err, "resolve today's plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
