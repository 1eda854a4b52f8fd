package service

import (
	"context"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/store"
	"github.com/microcosm-cc/bluemonday"
)

type WishlistService struct {
	store     store.GuestStore
	sanitizer *bluemonday.Policy
}

func NewWishlistService(guestStore store.GuestStore) *WishlistService {
	return &WishlistService{
		store:     guestStore,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *WishlistService) GetItems(ctx context.Context, deviceID string) []models.LocalWishlistEntry {
	return s.store.GetWishlistItems(ctx, deviceID)
}

func (s *WishlistService) AddItem(ctx context.Context, deviceID string, req *models.AddWishlistItemRequest) []models.LocalWishlistEntry {

	product := req.Product
	product.Name = s.sanitizer.Sanitize(product.Name)

	return s.store.AddWishlistItem(ctx, deviceID, product)
}

func (s *WishlistService) RemoveItem(ctx context.Context, deviceID string, productID int64) []models.LocalWishlistEntry {
	return s.store.RemoveWishlistItem(ctx, deviceID, productID)
}

func (s *WishlistService) Clear(ctx context.Context, deviceID string) {
	s.store.ClearWishlist(ctx, deviceID)
}
