package handlers

import (
	"net/http"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/api/middleware"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type WalletHandler struct {
	walletService *service.WalletService
	validator     *validator.Validate
}

func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		validator:     validator.New(),
	}
}

func (h *WalletHandler) GetBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := middleware.TokenFromContext(r.Context())

		balance, err := h.walletService.Balance(r.Context(), token)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"balance": balance})
	}
}

func (h *WalletHandler) GetPolicy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := middleware.TokenFromContext(r.Context())

		policy, err := h.walletService.Policy(r.Context(), token)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, policy)
	}
}

// PreviewRedemption recomputes the redemption for the current checkout
// inputs. The client calls this on every subtotal or requested-coin change;
// toggling "use wallet" on or off is purely client-side and does not hit
// this endpoint.
func (h *WalletHandler) PreviewRedemption() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := middleware.TokenFromContext(r.Context())

		var req models.RedemptionPreviewRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		preview, err := h.walletService.Preview(r.Context(), token, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, preview)
	}
}
