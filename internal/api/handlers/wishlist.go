package handlers

import (
	"net/http"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator.New(),
	}
}

func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		items := h.wishlistService.GetItems(r.Context(), id)

		response.Success(w, http.StatusOK, items)
	}
}

func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		var req models.AddWishlistItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, r, h.validator, req) {
			return
		}

		items := h.wishlistService.AddItem(r.Context(), id, &req)

		response.Success(w, http.StatusCreated, items)
	}
}

func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := deviceID(w, r)
		if !ok {
			return
		}

		productID, ok := pathID(w, r, "productID")
		if !ok {
			return
		}

		items := h.wishlistService.RemoveItem(r.Context(), id, productID)

		response.Success(w, http.StatusOK, items)
	}
}
