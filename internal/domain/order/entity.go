package order

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("order: not found")
	ErrInvalidOrder = errors.New("order: invalid")
)

// Status lifecycle: pending -> paid -> shipped -> delivered, or cancelled.
// Only the admin back office moves an order past pending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item is one order line (Postgres: order_items). Snapshot of the cart line
// at submission time; prices do not follow later catalog edits.
type Item struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Qty            int    `json:"qty"`
	ImageURL       string `json:"imageUrl"`
}

// Address is the shipping destination snapshot embedded in the order row.
type Address struct {
	Label      string `json:"label"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order (Postgres: orders + order_items).
type Order struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Status          Status    `json:"status"`
	SubtotalCents   int64     `json:"subtotalCents"`
	ShippingCents   int64     `json:"shippingCents"`
	TotalCents      int64     `json:"totalCents"`
	ShippingAddress Address   `json:"shippingAddress"`
	Items           []Item    `json:"items"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// New builds a pending order from submission snapshots.
func New(id, userID string, items []Item, subtotalCents, shippingCents int64, addr Address, now time.Time) (Order, error) {
	o := Order{
		ID:              strings.TrimSpace(id),
		UserID:          strings.TrimSpace(userID),
		Status:          StatusPending,
		SubtotalCents:   subtotalCents,
		ShippingCents:   shippingCents,
		TotalCents:      subtotalCents + shippingCents,
		ShippingAddress: addr,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (o Order) validate() error {
	if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.UserID) == "" {
		return ErrInvalidOrder
	}
	if !o.Status.Valid() {
		return ErrInvalidOrder
	}
	if len(o.Items) == 0 {
		return ErrInvalidOrder
	}
	if o.SubtotalCents < 0 || o.ShippingCents < 0 {
		return ErrInvalidOrder
	}
	if o.TotalCents != o.SubtotalCents+o.ShippingCents {
		return ErrInvalidOrder
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 || it.UnitPriceCents < 0 {
			return ErrInvalidOrder
		}
	}
	return nil
}

// WithStatus returns a copy moved to the given status.
func (o Order) WithStatus(s Status, now time.Time) (Order, error) {
	if !s.Valid() {
		return Order{}, ErrInvalidOrder
	}
	out := o
	out.Status = s
	out.UpdatedAt = now
	return out, nil
}
