package service

import (
	"context"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/appstate"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/store"
	"github.com/microcosm-cc/bluemonday"
)

// CartService owns the guest cart. Product snapshots arrive from the
// client app, so display fields are sanitized before they are persisted.
type CartService struct {
	store     store.GuestStore
	state     *appstate.State
	sanitizer *bluemonday.Policy
}

func NewCartService(guestStore store.GuestStore, state *appstate.State) *CartService {
	return &CartService{
		store:     guestStore,
		state:     state,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *CartService) GetItems(ctx context.Context, deviceID string) []models.LocalCartEntry {
	return s.store.GetCartItems(ctx, deviceID)
}

func (s *CartService) AddItem(ctx context.Context, deviceID string, req *models.AddCartItemRequest) []models.LocalCartEntry {

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product := req.Product
	product.Name = s.sanitizer.Sanitize(product.Name)

	items := s.store.AddCartItem(ctx, deviceID, product, quantity)
	s.state.SetCartCount(len(items))

	return items
}

func (s *CartService) UpdateQuantity(ctx context.Context, deviceID string, req *models.UpdateQuantityRequest) []models.LocalCartEntry {
	return s.store.UpdateCartQuantity(ctx, deviceID, req.ProductID, req.Quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, deviceID string, productID int64) []models.LocalCartEntry {

	items := s.store.RemoveCartItem(ctx, deviceID, productID)
	s.state.SetCartCount(len(items))

	return items
}

func (s *CartService) Clear(ctx context.Context, deviceID string) {
	s.store.ClearCart(ctx, deviceID)
	s.state.SetCartCount(0)
}
