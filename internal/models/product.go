package models

// ProductSnapshot is a copy of the catalog fields captured when a guest
// adds a product. It may go stale relative to the live catalog; refreshing
// it is the catalog's concern, not ours.
type ProductSnapshot struct {
	ID    int64   `json:"id"    validate:"required,gt=0"`
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"min=0"`
	MRP   float64 `json:"mrp"   validate:"min=0"`
	Image string  `json:"image"`
}
