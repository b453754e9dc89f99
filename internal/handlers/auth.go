package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (types.Identity, error)
}

// AuthHandler provides account endpoints.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// AuthRouter registers account routes on the given router. loginLimit, when
// not nil, wraps the login route.
func AuthRouter(
	r chi.Router,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
	loginLimit func(http.Handler) http.Handler,
) {
	handler := NewAuthHandler(userService)

	r.Post("/register", handler.Register)
	if loginLimit != nil {
		r.With(loginLimit).Post("/login", handler.Login)
	} else {
		r.Post("/login", handler.Login)
	}
	r.With(authMiddleware).Get("/me", handler.Me)
}

// RequireAuth verifies the bearer token and injects the caller identity.
// A missing token is 401, an invalid or expired one is 403.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Access denied")
				return
			}

			identity, err := verifier.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusForbidden, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	_, err := h.userService.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "Username and password required")
	case errors.Is(err, store.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, "Username already exists")
	case err != nil:
		writeServerError(w, r, err, "register user")
	default:
		writeJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
	}
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		writeServerError(w, r, err, "login")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Username: user.Username})
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}

	user, err := h.userService.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeServerError(w, r, err, "load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
