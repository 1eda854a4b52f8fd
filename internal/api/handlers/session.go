package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/api/middleware"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/appstate"
	appErrors "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// SessionHandler is the authentication boundary. Establishing a session is
// the moment the device's guest cart and wishlist get merged into the
// user's server state exactly once, before the session is reported ready.
type SessionHandler struct {
	auth           *middleware.AuthMiddleware
	reconciliation *service.ReconciliationService
	state          *appstate.State
	validator      *validator.Validate
}

func NewSessionHandler(auth *middleware.AuthMiddleware, reconciliation *service.ReconciliationService, state *appstate.State) *SessionHandler {
	return &SessionHandler{
		auth:           auth,
		reconciliation: reconciliation,
		state:          state,
		validator:      validator.New(),
	}
}

func (h *SessionHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		var req models.CreateSessionRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		claims, err := h.auth.ParseToken(req.Token)
		if err != nil {
			logger.Warn("Session token rejected at login", slog.String("error", err.Error()))
			response.Error(w, appErrors.UnauthorizedError("Invalid or expired token"))

			return
		}

		summary, err := h.reconciliation.Run(r.Context(), id, req.Token)
		if err != nil {
			logger.Error("Guest reconciliation failed, session not established", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		h.state.SetSession(claims.UserID)

		logger.Info("Session established",
			slog.Int64("user_id", claims.UserID),
			slog.Int("merged_cart_items", summary.CartCreated+summary.CartUpdated),
			slog.Int("merged_wishlist_items", summary.WishlistCreated))

		response.Success(w, http.StatusCreated, map[string]any{
			"user_id":        claims.UserID,
			"reconciliation": summary,
		})
	}
}

func (h *SessionHandler) DeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.state.ClearSession()

		middleware.LoggerFromContext(r.Context()).Info("Session cleared")

		response.Success(w, http.StatusOK, map[string]string{"status": "logged_out"})
	}
}

// AppState exposes the current session/badge snapshot so clients can render
// auth state and the cart badge without a round of separate calls.
func (h *SessionHandler) AppState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.state.Snapshot())
	}
}
