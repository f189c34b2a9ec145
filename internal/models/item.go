package models

// Item status values. Only sold items with a price contribute to earnings.
const (
	StatusPending  = "pending"
	StatusSold     = "sold"
	StatusReserved = "reserved"
)

// ValidStatus reports whether s is one of the known item statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusSold || s == StatusReserved
}

// Item represents a piece of loot tracked within a group.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// GroupID is the group this item belongs to.
	GroupID string `json:"group_id"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Price is the sale price. Nil until a price is known.
	Price *float64 `json:"price"`

	// SellerID is the player who sold the item. The seller does not have
	// to be a group member. Empty means no seller recorded.
	SellerID string `json:"seller_id,omitempty"`

	// SellerName is the seller's display name, filled on reads.
	SellerName string `json:"seller_name,omitempty"`

	// Status is one of pending, sold or reserved.
	Status string `json:"status"`

	// CreatedAt is the Unix timestamp when the item was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Sold reports whether the item counts toward earnings: it must be sold
// and carry a price.
func (i *Item) Sold() bool {
	return i.Status == StatusSold && i.Price != nil
}
