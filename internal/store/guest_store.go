package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/config"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/utils"
	"github.com/redis/go-redis/v9"
)

// GuestStore holds the cart and wishlist a device accumulates before the
// user signs in. Collections are stored as whole JSON arrays under one key
// per device, read-modify-written on every call.
//
// Every method fails soft: a storage or deserialization error is logged and
// the caller sees an empty (or unchanged) collection, never an error. The
// reconciliation engine depends on this: corrupted guest state must read as
// "nothing to merge", not break the login flow.
type GuestStore interface {
	GetCartItems(ctx context.Context, deviceID string) []models.LocalCartEntry
	AddCartItem(ctx context.Context, deviceID string, product models.ProductSnapshot, quantity int) []models.LocalCartEntry
	UpdateCartQuantity(ctx context.Context, deviceID string, productID int64, quantity int) []models.LocalCartEntry
	RemoveCartItem(ctx context.Context, deviceID string, productID int64) []models.LocalCartEntry
	ClearCart(ctx context.Context, deviceID string)

	GetWishlistItems(ctx context.Context, deviceID string) []models.LocalWishlistEntry
	AddWishlistItem(ctx context.Context, deviceID string, product models.ProductSnapshot) []models.LocalWishlistEntry
	RemoveWishlistItem(ctx context.Context, deviceID string, productID int64) []models.LocalWishlistEntry
	ClearWishlist(ctx context.Context, deviceID string)
}

type redisGuestStore struct {
	client *redis.Client
	cfg    *config.GuestStore
	now    func() time.Time
}

func NewRedisGuestStore(client *redis.Client, cfg *config.GuestStore) GuestStore {
	return &redisGuestStore{
		client: client,
		cfg:    cfg,
		now:    time.Now,
	}
}

func Key(prefix, deviceID string) string {
	return prefix + ":" + deviceID
}

func (s *redisGuestStore) cartKey(deviceID string) string {
	return Key(s.cfg.CartKeyPrefix, deviceID)
}

func (s *redisGuestStore) wishlistKey(deviceID string) string {
	return Key(s.cfg.WishlistKeyPrefix, deviceID)
}

// readList is the fallible inner read; callers translate errors into the
// documented fail-soft behaviour.
func (s *redisGuestStore) readList(ctx context.Context, key string, dest any) error {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	data, err := s.client.Get(storeCtx, key).Bytes()
	if err != nil {

		if err == redis.Nil {
			return nil
		}

		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal guest state for key %s: %w", key, err)
	}

	return nil
}

func (s *redisGuestStore) writeList(ctx context.Context, key string, value any) error {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal guest state for key %s: %w", key, err)
	}

	if err := s.client.Set(storeCtx, key, data, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (s *redisGuestStore) deleteKey(ctx context.Context, key string) {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	if err := s.client.Del(storeCtx, key).Err(); err != nil {
		slog.Warn("Failed to clear guest collection", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *redisGuestStore) GetCartItems(ctx context.Context, deviceID string) []models.LocalCartEntry {

	var items []models.LocalCartEntry

	if err := s.readList(ctx, s.cartKey(deviceID), &items); err != nil {
		slog.Warn("Guest cart read failed, treating as empty", slog.String("device_id", deviceID), slog.String("error", err.Error()))
		return []models.LocalCartEntry{}
	}

	if items == nil {
		items = []models.LocalCartEntry{}
	}

	return items
}

func (s *redisGuestStore) AddCartItem(ctx context.Context, deviceID string, product models.ProductSnapshot, quantity int) []models.LocalCartEntry {

	items := s.GetCartItems(ctx, deviceID)

	found := false

	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += quantity
			found = true

			break
		}
	}

	if !found {
		items = append(items, models.LocalCartEntry{Product: product, Quantity: quantity})
	}

	s.persistCart(ctx, deviceID, items)

	return items
}

func (s *redisGuestStore) UpdateCartQuantity(ctx context.Context, deviceID string, productID int64, quantity int) []models.LocalCartEntry {

	items := s.GetCartItems(ctx, deviceID)

	// quantity is written as given; removal on qty < 1 is the caller's call
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			s.persistCart(ctx, deviceID, items)

			break
		}
	}

	return items
}

func (s *redisGuestStore) RemoveCartItem(ctx context.Context, deviceID string, productID int64) []models.LocalCartEntry {

	items := s.GetCartItems(ctx, deviceID)

	for i := range items {
		if items[i].Product.ID == productID {
			items = append(items[:i], items[i+1:]...)
			s.persistCart(ctx, deviceID, items)

			break
		}
	}

	return items
}

func (s *redisGuestStore) ClearCart(ctx context.Context, deviceID string) {
	s.deleteKey(ctx, s.cartKey(deviceID))
}

func (s *redisGuestStore) GetWishlistItems(ctx context.Context, deviceID string) []models.LocalWishlistEntry {

	var items []models.LocalWishlistEntry

	if err := s.readList(ctx, s.wishlistKey(deviceID), &items); err != nil {
		slog.Warn("Guest wishlist read failed, treating as empty", slog.String("device_id", deviceID), slog.String("error", err.Error()))
		return []models.LocalWishlistEntry{}
	}

	if items == nil {
		items = []models.LocalWishlistEntry{}
	}

	return items
}

func (s *redisGuestStore) AddWishlistItem(ctx context.Context, deviceID string, product models.ProductSnapshot) []models.LocalWishlistEntry {

	items := s.GetWishlistItems(ctx, deviceID)

	// idempotent: a repeated add keeps the original entry and DateAdded
	for i := range items {
		if items[i].ProductID == product.ID {
			return items
		}
	}

	items = append(items, models.LocalWishlistEntry{
		ProductID: product.ID,
		Product:   product,
		DateAdded: s.now().UTC(),
	})

	s.persistWishlist(ctx, deviceID, items)

	return items
}

func (s *redisGuestStore) RemoveWishlistItem(ctx context.Context, deviceID string, productID int64) []models.LocalWishlistEntry {

	items := s.GetWishlistItems(ctx, deviceID)

	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			s.persistWishlist(ctx, deviceID, items)

			break
		}
	}

	return items
}

func (s *redisGuestStore) ClearWishlist(ctx context.Context, deviceID string) {
	s.deleteKey(ctx, s.wishlistKey(deviceID))
}

func (s *redisGuestStore) persistCart(ctx context.Context, deviceID string, items []models.LocalCartEntry) {
	if err := s.writeList(ctx, s.cartKey(deviceID), items); err != nil {
		slog.Warn("Guest cart write failed", slog.String("device_id", deviceID), slog.String("error", err.Error()))
	}
}

func (s *redisGuestStore) persistWishlist(ctx context.Context, deviceID string, items []models.LocalWishlistEntry) {
	if err := s.writeList(ctx, s.wishlistKey(deviceID), items); err != nil {
		slog.Warn("Guest wishlist write failed", slog.String("device_id", deviceID), slog.String("error", err.Error()))
	}
}
