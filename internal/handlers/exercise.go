package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	exercises *services.ExerciseService
}

func NewExerciseHandler(exercises *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// ExerciseRouter registers catalog routes. Every route requires auth.
func ExerciseRouter(r chi.Router, exercises *services.ExerciseService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewExerciseHandler(exercises)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Get("/categories", handler.Categories)
	r.Get("/muscles", handler.Muscles)
	r.Get("/category/{category}", handler.ListByCategory)
	r.Get("/muscle/{muscle}", handler.ListByMuscle)
	r.Get("/random/{muscle}", handler.RandomByMuscle)
	r.Route("/{exerciseID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.exercises.ListAll(r.Context())
	if err != nil {
		writeServerError(w, r, err, "list exercises")
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *ExerciseHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.exercises.Categories(r.Context())
	if err != nil {
		writeServerError(w, r, err, "list categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ExerciseHandler) Muscles(w http.ResponseWriter, r *http.Request) {
	muscles, err := h.exercises.Muscles(r.Context())
	if err != nil {
		writeServerError(w, r, err, "list muscles")
		return
	}
	writeJSON(w, http.StatusOK, muscles)
}

func (h *ExerciseHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.exercises.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeServerError(w, r, err, "list exercises by category")
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *ExerciseHandler) ListByMuscle(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.exercises.ListByMuscle(r.Context(), chi.URLParam(r, "muscle"))
	if err != nil {
		writeServerError(w, r, err, "list exercises by muscle")
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *ExerciseHandler) RandomByMuscle(w http.ResponseWriter, r *http.Request) {
	exercise, err := h.exercises.RandomByMuscle(r.Context(), chi.URLParam(r, "muscle"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No exercise found for muscle")
			return
		}
		writeServerError(w, r, err, "pick random exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	exercise, err := h.exercises.Get(r.Context(), exerciseIDParam(r))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Exercise not found")
			return
		}
		writeServerError(w, r, err, "get exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var fields types.ExerciseFields
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields.Type != nil && !validExerciseType(*fields.Type) {
		writeError(w, http.StatusBadRequest, "Exercise type must be strength or cardio")
		return
	}

	exercise, err := h.exercises.Create(r.Context(), fields, identity.UserID)
	if err != nil {
		writeServerError(w, r, err, "create exercise")
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var fields types.ExerciseFields
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields.Type != nil && !validExerciseType(*fields.Type) {
		writeError(w, http.StatusBadRequest, "Exercise type must be strength or cardio")
		return
	}

	exercise, err := h.exercises.Update(r.Context(), exerciseIDParam(r), fields, identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Cannot modify this exercise")
			return
		}
		writeServerError(w, r, err, "update exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	if err := h.exercises.Delete(r.Context(), exerciseIDParam(r), identity.UserID); err != nil {
		if errors.Is(err, store.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Cannot delete this exercise")
			return
		}
		writeServerError(w, r, err, "delete exercise")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Exercise deleted"})
}

func exerciseIDParam(r *http.Request) types.ExerciseID {
	return types.ExerciseID(chi.URLParam(r, "exerciseID"))
}

func validExerciseType(t types.ExerciseType) bool {
	return t == types.ExerciseTypeStrength || t == types.ExerciseTypeCardio
}
