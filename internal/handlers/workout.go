package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// WorkoutHandler serves the caller's workout log.
type WorkoutHandler struct {
	workouts *services.WorkoutService
}

func NewWorkoutHandler(workouts *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// WorkoutRouter registers workout routes. Every route requires auth.
func WorkoutRouter(r chi.Router, workouts *services.WorkoutService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewWorkoutHandler(workouts)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Get("/range", handler.ListRange)
	r.Get("/latest/{exerciseID}", handler.Latest)
	r.Delete("/{workoutID}", handler.Delete)
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var in services.LogWorkoutInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Type != "" && !validExerciseType(in.Type) {
		writeError(w, http.StatusBadRequest, "Workout type must be strength or cardio")
		return
	}

	entry, err := h.workouts.Append(r.Context(), identity.UserID, in)
	if err != nil {
		writeServerError(w, r, err, "log workout")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	entries, err := h.workouts.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeServerError(w, r, err, "list workouts")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListRange filters by the optional startDate and endDate query parameters.
func (h *WorkoutHandler) ListRange(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	start, ok := parseDateParam(r, "startDate")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid startDate")
		return
	}
	end, ok := parseDateParam(r, "endDate")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid endDate")
		return
	}

	entries, err := h.workouts.ListForUserInRange(r.Context(), identity.UserID, start, end)
	if err != nil {
		writeServerError(w, r, err, "list workouts in range")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *WorkoutHandler) Latest(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	exerciseID := types.ExerciseID(chi.URLParam(r, "exerciseID"))
	entry, err := h.workouts.MostRecentForExercise(r.Context(), identity.UserID, exerciseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No workout found for exercise")
			return
		}
		writeServerError(w, r, err, "latest workout")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "workoutID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Workout not found")
		return
	}

	if err := h.workouts.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeServerError(w, r, err, "delete workout")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Workout deleted"})
}

// parseDateParam accepts RFC 3339 timestamps and YYYY-MM-DD dates (UTC
// midnight). An absent parameter yields nil.
func parseDateParam(r *http.Request, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}
