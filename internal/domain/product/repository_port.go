package product

import "context"

// Filter narrows List results; zero value means "everything".
type Filter struct {
	Category    string
	InStockOnly bool
}

// Repository is a persistence port for Product (Postgres: products).
type Repository interface {
	// GetByID returns ErrNotFound when the row is absent.
	GetByID(ctx context.Context, id string) (*Product, error)

	List(ctx context.Context, f Filter) ([]Product, error)

	Insert(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}
