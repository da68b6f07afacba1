package cart

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// DefaultCartTTL is the inactivity window after which the cart becomes eligible
// for auto deletion (Firestore TTL should be configured on expiresAt).
const DefaultCartTTL = 30 * 24 * time.Hour

// ShippingFlatCents is the flat shipping fee applied to any non-empty cart.
const ShippingFlatCents = 999

// Item represents one line item in a cart.
// Name/UnitPriceCents/ImageURL are snapshots taken when the item was added,
// so the cart stays renderable even if the catalog row changes later.
type Item struct {
	ProductID      string `json:"productId" firestore:"productId"`
	Name           string `json:"name" firestore:"name"`
	UnitPriceCents int64  `json:"unitPriceCents" firestore:"unitPriceCents"`
	Qty            int    `json:"qty" firestore:"qty"`
	ImageURL       string `json:"imageUrl" firestore:"imageUrl"`
}

// Cart represents a cart document.
//   - docId = userId (Firestore)
//   - Items: []Item, unique by ProductID
//   - ExpiresAt: for Firestore TTL, refreshed on each mutation
type Cart struct {
	// ID is Firestore docId (= userId).
	ID string `json:"id" firestore:"id"`

	Items []Item `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// New creates a new cart doc. id is the Firestore docId (userId).
// items can be nil (treated as empty).
func New(id string, items []Item, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increments quantity for item.ProductID, appending a new line if absent.
// Snapshot fields (name, price, image) are refreshed on merge so the latest
// catalog snapshot wins.
func (c *Cart) Add(item Item, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(item.ProductID)
	if pid == "" || item.Qty <= 0 || item.UnitPriceCents < 0 {
		return ErrInvalidCart
	}

	if c.Items == nil {
		c.Items = []Item{}
	}

	idx := findItemIndex(c.Items, pid)
	if idx >= 0 {
		qty := c.Items[idx].Qty + item.Qty
		c.Items[idx] = Item{
			ProductID:      pid,
			Name:           strings.TrimSpace(item.Name),
			UnitPriceCents: item.UnitPriceCents,
			Qty:            qty,
			ImageURL:       strings.TrimSpace(item.ImageURL),
		}
	} else {
		c.Items = append(c.Items, Item{
			ProductID:      pid,
			Name:           strings.TrimSpace(item.Name),
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
			ImageURL:       strings.TrimSpace(item.ImageURL),
		})
	}

	c.touch(now)
	return c.validate()
}

// SetQty sets quantity for productID. If qty <= 0, the line is removed.
// Setting qty on an absent productID is a no-op (quantity steppers can race
// a remove in the storefront; treat it as already gone).
func (c *Cart) SetQty(productID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidCart
	}

	idx := findItemIndex(c.Items, pid)

	if qty <= 0 {
		if idx >= 0 {
			c.Items = removeIndex(c.Items, idx)
		}
		c.touch(now)
		return c.validate()
	}

	if idx < 0 {
		c.touch(now)
		return c.validate()
	}

	c.Items[idx].Qty = qty
	c.touch(now)
	return c.validate()
}

// Remove removes a productID from the cart (no-op when absent).
func (c *Cart) Remove(productID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidCart
	}
	if idx := findItemIndex(c.Items, pid); idx >= 0 {
		c.Items = removeIndex(c.Items, idx)
	}
	c.touch(now)
	return c.validate()
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = []Item{}
	c.touch(now)
	return c.validate()
}

// ConsumeAll clears items for order creation and returns a snapshot.
// Call within the same request that persists the order.
func (c *Cart) ConsumeAll(now time.Time) ([]Item, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}

	snap := cloneItems(c.Items)
	c.Items = []Item{}

	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// SubtotalCents is the sum of unit price × qty over all lines.
// Totals are derived on every read and never stored.
func (c *Cart) SubtotalCents() int64 {
	if c == nil {
		return 0
	}
	var sum int64
	for _, it := range c.Items {
		sum += it.UnitPriceCents * int64(it.Qty)
	}
	return sum
}

// ShippingCents is the flat fee for a non-empty cart, zero otherwise.
func (c *Cart) ShippingCents() int64 {
	if c.SubtotalCents() > 0 {
		return ShippingFlatCents
	}
	return 0
}

// TotalCents = subtotal + shipping.
func (c *Cart) TotalCents() int64 {
	return c.SubtotalCents() + c.ShippingCents()
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	if len(c.Items) == 0 {
		return nil
	}

	c.Items = normalizeAndMerge(c.Items)

	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 || it.UnitPriceCents < 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

func findItemIndex(items []Item, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func removeIndex(items []Item, idx int) []Item {
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return []Item{}
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// normalizeAndMerge trims ids, drops empty/non-positive lines, merges
// duplicate productIDs (qty summed, later snapshot wins) and keeps a stable
// order for deterministic persistence.
func normalizeAndMerge(items []Item) []Item {
	merged := make([]Item, 0, len(items))
	index := map[string]int{}

	for _, it := range items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.Qty <= 0 {
			continue
		}
		if at, ok := index[pid]; ok {
			qty := merged[at].Qty + it.Qty
			merged[at] = it
			merged[at].ProductID = pid
			merged[at].Qty = qty
			continue
		}
		index[pid] = len(merged)
		it.ProductID = pid
		merged = append(merged, it)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ProductID < merged[j].ProductID
	})
	return merged
}
