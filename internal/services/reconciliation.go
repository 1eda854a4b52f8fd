package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/metrics"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/reconcile"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/store"
)

// ReconciliationService folds a device's guest cart and wishlist into the
// authenticated user's server state. It runs once per successful login,
// before the session is reported ready.
type ReconciliationService struct {
	store store.GuestStore
	core  CoreClient
}

func NewReconciliationService(guestStore store.GuestStore, core CoreClient) *ReconciliationService {
	return &ReconciliationService{store: guestStore, core: core}
}

// Run fetches both server collections concurrently, merges the guest state
// in, clears the guest store, and pushes the per-item deltas.
//
// The guest store is cleared after the merge computation, before any push.
// A push that then fails drops that guest item for good; this keeps a retried
// login from applying the same merge twice, at the cost of losing guest data
// on a flaky connection. Failures are logged and counted, never retried.
func (s *ReconciliationService) Run(ctx context.Context, deviceID, token string) (*models.ReconciliationSummary, error) {

	var (
		serverCart     []models.RemoteCartItem
		serverWishlist []models.RemoteWishlistItem
		cartErr        error
		wishlistErr    error
	)

	var fetchWG sync.WaitGroup

	fetchWG.Add(2)

	go func() {
		defer fetchWG.Done()

		serverCart, cartErr = s.core.GetCart(ctx, token)
	}()

	go func() {
		defer fetchWG.Done()

		serverWishlist, wishlistErr = s.core.GetWishlist(ctx, token)
	}()

	fetchWG.Wait()

	if cartErr != nil {
		metrics.ObserveReconciliationRun(false)
		return nil, errors.UpstreamError("Failed to fetch server cart").WithError(cartErr)
	}

	if wishlistErr != nil {
		metrics.ObserveReconciliationRun(false)
		return nil, errors.UpstreamError("Failed to fetch server wishlist").WithError(wishlistErr)
	}

	localCart := s.store.GetCartItems(ctx, deviceID)
	localWishlist := s.store.GetWishlistItems(ctx, deviceID)

	// remember pre-merge quantities so only genuinely changed items get a PUT
	originalQty := make(map[int64]int, len(serverCart))
	for _, item := range serverCart {
		originalQty[item.ID] = item.Quantity
	}

	mergedCart := reconcile.MergeCart(localCart, serverCart)
	mergedWishlist := reconcile.MergeWishlist(localWishlist, serverWishlist)

	s.store.ClearCart(ctx, deviceID)
	s.store.ClearWishlist(ctx, deviceID)

	summary := &models.ReconciliationSummary{}

	var (
		mu     sync.Mutex
		pushWG sync.WaitGroup
	)

	record := func(kind string, err error, onSuccess func()) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			summary.Failed++
			metrics.ObserveReconciliationPush(kind, false)
			slog.Warn("Reconciliation push failed, guest item dropped",
				slog.String("kind", kind),
				slog.String("device_id", deviceID),
				slog.String("error", err.Error()))

			return
		}

		metrics.ObserveReconciliationPush(kind, true)
		onSuccess()
	}

	for _, item := range mergedCart {

		switch {
		case item.Pending():
			pushWG.Add(1)

			go func(item models.RemoteCartItem) {
				defer pushWG.Done()

				_, err := s.core.CreateCartItem(ctx, token, item.Product.ID, item.Quantity)
				record("cart_create", err, func() { summary.CartCreated++ })
			}(item)

		case item.Quantity != originalQty[item.ID]:
			pushWG.Add(1)

			go func(item models.RemoteCartItem) {
				defer pushWG.Done()

				_, err := s.core.UpdateCartItem(ctx, token, item.ID, item.Quantity)
				record("cart_update", err, func() { summary.CartUpdated++ })
			}(item)
		}
	}

	for _, item := range mergedWishlist {

		if !item.Pending() {
			continue
		}

		pushWG.Add(1)

		go func(item models.RemoteWishlistItem) {
			defer pushWG.Done()

			_, err := s.core.CreateWishlistItem(ctx, token, item.ProductID)
			record("wishlist_create", err, func() { summary.WishlistCreated++ })
		}(item)
	}

	pushWG.Wait()

	metrics.ObserveReconciliationRun(summary.Failed == 0)

	slog.Info("Guest reconciliation finished",
		slog.String("device_id", deviceID),
		slog.Int("cart_created", summary.CartCreated),
		slog.Int("cart_updated", summary.CartUpdated),
		slog.Int("wishlist_created", summary.WishlistCreated),
		slog.Int("failed", summary.Failed))

	return summary, nil
}
