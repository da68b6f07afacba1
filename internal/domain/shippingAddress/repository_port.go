package shippingAddress

import "context"

// Repository is a persistence port for ShippingAddress.
//
// Storage (Firestore):
// - collection: shipping_addresses
// - docId: address id (uuid)
// - fields: userId, label, line1, line2, city, state, postalCode, country, isDefault
type Repository interface {
	// GetByID returns (nil, nil) when not found.
	GetByID(ctx context.Context, id string) (*ShippingAddress, error)

	// ListByUserID returns all addresses owned by the user (unordered;
	// callers apply SortDefaultFirst).
	ListByUserID(ctx context.Context, userID string) ([]ShippingAddress, error)

	Upsert(ctx context.Context, a ShippingAddress) error
	Delete(ctx context.Context, id string) error
}
