package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage (Firestore):
// - collection: carts
// - docId: userId
// - fields: items, createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on the "expiresAt" field.
// - expiresAt is refreshed on each cart mutation (handled by domain via touch()).
type Repository interface {
	// GetByUserID returns the cart for the user.
	// Not-found policy: return (nil, nil) and let the application layer treat
	// nil as "empty cart".
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Upsert saves the cart (create or update).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByUserID deletes the cart for the user (e.g., after order).
	DeleteByUserID(ctx context.Context, userID string) error
}
