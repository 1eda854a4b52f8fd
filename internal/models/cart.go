package models

// LocalCartEntry is one line of a guest (device-scoped) cart.
// Keyed by Product.ID, unique per product.
type LocalCartEntry struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// RemoteCartItem is a server-assigned cart record on the storefront core.
// ID 0 means the item has not been created on the server yet; the
// reconciliation engine appends such items and the pusher creates them.
type RemoteCartItem struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"userId"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Pending reports whether the item still needs a server-side create.
func (i RemoteCartItem) Pending() bool {
	return i.ID == 0
}

type AddCartItemRequest struct {
	Product  ProductSnapshot `json:"product"  validate:"required"`
	Quantity int             `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   validate:"required,min=1"`
}
