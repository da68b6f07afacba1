package order

import "context"

// Repository is a persistence port for Order (Postgres: orders, order_items).
type Repository interface {
	// GetByID returns ErrNotFound when the row is absent.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUserID returns the user's orders, newest first, items included.
	ListByUserID(ctx context.Context, userID string) ([]Order, error)

	// List returns all orders (admin back office), newest first.
	List(ctx context.Context) ([]Order, error)

	// Insert writes the order and its items in one transaction.
	Insert(ctx context.Context, o Order) error

	UpdateStatus(ctx context.Context, id string, s Status) error
}
