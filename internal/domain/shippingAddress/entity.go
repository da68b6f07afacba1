package shippingAddress

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ShippingAddress is one entry in a user's address book.
//
// Line2 and State are optional; everything else is required at creation.
// At most one address per user should carry IsDefault=true; the usecase
// reconciles the previous default when a new one is marked.
type ShippingAddress struct {
	ID         string `json:"id" firestore:"id"`
	UserID     string `json:"userId" firestore:"userId"`
	Label      string `json:"label" firestore:"label"` // recipient name on the form
	Line1      string `json:"line1" firestore:"line1"`
	Line2      string `json:"line2,omitempty" firestore:"line2"`
	City       string `json:"city" firestore:"city"`
	State      string `json:"state,omitempty" firestore:"state"`
	PostalCode string `json:"postalCode" firestore:"postalCode"`
	Country    string `json:"country" firestore:"country"`
	IsDefault  bool   `json:"isDefault" firestore:"isDefault"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

var (
	ErrInvalidID         = errors.New("shippingAddress: invalid id")
	ErrInvalidUserID     = errors.New("shippingAddress: invalid userId")
	ErrInvalidLabel      = errors.New("shippingAddress: invalid label")
	ErrInvalidLine1      = errors.New("shippingAddress: invalid line1")
	ErrInvalidCity       = errors.New("shippingAddress: invalid city")
	ErrInvalidPostalCode = errors.New("shippingAddress: invalid postalCode")
	ErrInvalidCountry    = errors.New("shippingAddress: invalid country")
	ErrInvalidCreatedAt  = errors.New("shippingAddress: invalid createdAt")
	ErrInvalidUpdatedAt  = errors.New("shippingAddress: invalid updatedAt")
)

func (a ShippingAddress) validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrInvalidID
	}
	if strings.TrimSpace(a.UserID) == "" {
		return ErrInvalidUserID
	}
	if strings.TrimSpace(a.Label) == "" {
		return ErrInvalidLabel
	}
	if strings.TrimSpace(a.Line1) == "" {
		return ErrInvalidLine1
	}
	if strings.TrimSpace(a.City) == "" {
		return ErrInvalidCity
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		return ErrInvalidPostalCode
	}
	if strings.TrimSpace(a.Country) == "" {
		return ErrInvalidCountry
	}
	if a.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	if a.UpdatedAt.IsZero() || a.UpdatedAt.Before(a.CreatedAt) {
		return ErrInvalidUpdatedAt
	}
	return nil
}

// New builds a validated address. Optional fields may be empty.
func New(id, userID, label, line1, line2, city, state, postalCode, country string, isDefault bool, now time.Time) (ShippingAddress, error) {
	a := ShippingAddress{
		ID:         strings.TrimSpace(id),
		UserID:     strings.TrimSpace(userID),
		Label:      strings.TrimSpace(label),
		Line1:      strings.TrimSpace(line1),
		Line2:      strings.TrimSpace(line2),
		City:       strings.TrimSpace(city),
		State:      strings.TrimSpace(state),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
		IsDefault:  isDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := a.validate(); err != nil {
		return ShippingAddress{}, err
	}
	return a, nil
}

// Patch carries partial-update fields; nil means "leave unchanged".
type Patch struct {
	Label      *string
	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
	IsDefault  *bool
}

// Apply returns a copy with the patch applied and UpdatedAt bumped.
func (a ShippingAddress) Apply(p Patch, now time.Time) (ShippingAddress, error) {
	out := a
	if p.Label != nil {
		out.Label = strings.TrimSpace(*p.Label)
	}
	if p.Line1 != nil {
		out.Line1 = strings.TrimSpace(*p.Line1)
	}
	if p.Line2 != nil {
		out.Line2 = strings.TrimSpace(*p.Line2)
	}
	if p.City != nil {
		out.City = strings.TrimSpace(*p.City)
	}
	if p.State != nil {
		out.State = strings.TrimSpace(*p.State)
	}
	if p.PostalCode != nil {
		out.PostalCode = strings.TrimSpace(*p.PostalCode)
	}
	if p.Country != nil {
		out.Country = strings.TrimSpace(*p.Country)
	}
	if p.IsDefault != nil {
		out.IsDefault = *p.IsDefault
	}
	out.UpdatedAt = now
	if err := out.validate(); err != nil {
		return ShippingAddress{}, err
	}
	return out, nil
}

// SortDefaultFirst orders default-flagged entries first, then newest first.
// It tolerates (and preserves) legacy data where more than one entry is
// flagged default.
func SortDefaultFirst(addrs []ShippingAddress) {
	sort.SliceStable(addrs, func(i, j int) bool {
		if addrs[i].IsDefault != addrs[j].IsDefault {
			return addrs[i].IsDefault
		}
		return addrs[i].CreatedAt.After(addrs[j].CreatedAt)
	})
}
