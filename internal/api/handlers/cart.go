package handlers

import (
	"net/http"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CartHandler serves the guest cart. Everything here is device-scoped and
// unauthenticated; once the user signs in, the session handler merges this
// state into the server-side cart.
type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		items := h.cartService.GetItems(r.Context(), id)

		response.Success(w, http.StatusOK, items)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		var req models.AddCartItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		items := h.cartService.AddItem(r.Context(), id, &req)

		response.Success(w, http.StatusCreated, items)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		items := h.cartService.UpdateQuantity(r.Context(), id, &req)

		response.Success(w, http.StatusOK, items)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		productID, ok := pathID(w, r, "productID")
		if !ok {
			return
		}

		items := h.cartService.RemoveItem(r.Context(), id, productID)

		response.Success(w, http.StatusOK, items)
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		h.cartService.Clear(r.Context(), id)

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
