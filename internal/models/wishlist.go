package models

import "time"

// LocalWishlistEntry is one guest wishlist record. Adds are idempotent:
// the DateAdded of the first add is preserved.
type LocalWishlistEntry struct {
	ProductID int64           `json:"product_id"`
	Product   ProductSnapshot `json:"product"`
	DateAdded time.Time       `json:"date_added"`
}

// RemoteWishlistItem is a server-assigned wishlist record.
// ID 0 carries the same "not yet created" meaning as RemoteCartItem.
type RemoteWishlistItem struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	ProductID int64           `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	DateAdded time.Time       `json:"dateAdded"`
}

func (i RemoteWishlistItem) Pending() bool {
	return i.ID == 0
}

type AddWishlistItemRequest struct {
	Product ProductSnapshot `json:"product" validate:"required"`
}
