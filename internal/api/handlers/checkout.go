package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/api/middleware"
	appErrors "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		token := middleware.TokenFromContext(r.Context())

		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order placement attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.PlaceOrderRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		confirmation, err := h.checkoutService.PlaceOrder(r.Context(), token, &req)
		if err != nil {
			logger.Error("Order placement failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed",
			slog.Int64("user_id", claims.UserID),
			slog.Int64("order_id", confirmation.OrderID),
			slog.Int64("coins_used", confirmation.CoinsUsed))

		response.Success(w, http.StatusCreated, confirmation)
	}
}
