package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "straightenup/internal/domain/cart"
	productdom "straightenup/internal/domain/product"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
)

// ProductCatalog resolves the line snapshot for a cart add. Prices and names
// always come from the catalog; client input only names the product.
type ProductCatalog interface {
	Get(ctx context.Context, id string) (*productdom.Product, error)
}

// CartUsecase coordinates cart operations.
type CartUsecase struct {
	repo    cartdom.Repository
	catalog ProductCatalog
	clock   Clock
	notify  ChangeNotifier
}

func NewCartUsecase(repo cartdom.Repository, catalog ProductCatalog, notify ChangeNotifier) *CartUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &CartUsecase{
		repo:    repo,
		catalog: catalog,
		clock:   systemClock{},
		notify:  notify,
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, catalog ProductCatalog, notify ChangeNotifier, clock Clock) *CartUsecase {
	uc := NewCartUsecase(repo, catalog, notify)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// GetOrCreate returns an existing cart; if absent, creates an empty one and
// persists it. The storefront always renders a cart, so absence is not an
// error for the caller.
func (uc *CartUsecase) GetOrCreate(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	// Firestore TTL deletion can lag; a cart past its ExpiresAt is treated
	// as absent.
	if c != nil && c.ExpiresAt.After(now) {
		return c, nil
	}

	newCart, err := cartdom.New(uid, nil, now)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, newCart); err != nil {
		return nil, err
	}
	return newCart, nil
}

// AddItem resolves the product in the catalog and merges the snapshot into
// the user's cart (creating one if needed).
func (uc *CartUsecase) AddItem(ctx context.Context, userID, productID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" || qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	p, err := uc.catalog.Get(ctx, pid)
	if err != nil {
		return nil, err
	}
	item := cartdom.Item{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		Qty:            qty,
		ImageURL:       p.ImageURL,
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = cartdom.New(uid, nil, now)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Add(item, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	uc.notify.Notify("carts")
	return c, nil
}

// SetQty sets quantity for productID; qty <= 0 removes the line.
func (uc *CartUsecase) SetQty(ctx context.Context, userID, productID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if err := c.SetQty(pid, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	uc.notify.Notify("carts")
	return c, nil
}

// RemoveItem removes productID from the cart (no-op if absent).
func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, productID string) (*cartdom.Cart, error) {
	return uc.SetQty(ctx, userID, productID, 0)
}

// Clear empties the user's cart.
func (uc *CartUsecase) Clear(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if err := c.Clear(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	uc.notify.Notify("carts")
	return c, nil
}
