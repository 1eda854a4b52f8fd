// Package reconcile folds a device's guest cart and wishlist into the
// server-side state fetched at login. The merge itself is pure; pushing the
// result back to the storefront core is the caller's job.
package reconcile

import (
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
)

// MergeCart returns the desired end state of the server cart after folding
// in the guest entries.
//
// Conflict rule: when both sides hold the same product, the higher quantity
// wins. The merge is deliberately not additive so that a repeated merge with
// the same inputs cannot inflate quantities; guest intent and server intent
// are both preserved, never summed.
//
// Guest products unknown to the server are appended with ID and UserID 0,
// marking them for a server-side create.
func MergeCart(local []models.LocalCartEntry, server []models.RemoteCartItem) []models.RemoteCartItem {

	byProduct := make(map[int64]int, len(server))

	for i, item := range server {
		byProduct[item.Product.ID] = i
	}

	for _, entry := range local {

		if i, ok := byProduct[entry.Product.ID]; ok {
			if entry.Quantity > server[i].Quantity {
				server[i].Quantity = entry.Quantity
			}

			continue
		}

		server = append(server, models.RemoteCartItem{
			ID:       0,
			UserID:   0,
			Product:  entry.Product,
			Quantity: entry.Quantity,
		})
	}

	return server
}

// MergeWishlist appends guest wishlist entries the server does not already
// have, preserving the original DateAdded. Products present on both sides
// are left untouched, so the merged list never carries duplicates.
func MergeWishlist(local []models.LocalWishlistEntry, server []models.RemoteWishlistItem) []models.RemoteWishlistItem {

	seen := make(map[int64]struct{}, len(server))

	for _, item := range server {
		seen[item.ProductID] = struct{}{}
	}

	for _, entry := range local {

		if _, ok := seen[entry.ProductID]; ok {
			continue
		}

		server = append(server, models.RemoteWishlistItem{
			ID:        0,
			UserID:    0,
			ProductID: entry.ProductID,
			Product:   entry.Product,
			DateAdded: entry.DateAdded,
		})
	}

	return server
}
