package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	shipaddrdom "straightenup/internal/domain/shippingAddress"
)

var (
	ErrAddressInvalidArgument = errors.New("shippingAddress_usecase: invalid argument")
	ErrAddressNotFound        = errors.New("shippingAddress_usecase: not found")
	ErrAddressNotOwner        = errors.New("shippingAddress_usecase: address belongs to another user")
)

// ShippingAddressUsecase orchestrates address-book operations.
type ShippingAddressUsecase struct {
	repo   shipaddrdom.Repository
	clock  Clock
	notify ChangeNotifier
}

func NewShippingAddressUsecase(repo shipaddrdom.Repository, notify ChangeNotifier) *ShippingAddressUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &ShippingAddressUsecase{repo: repo, clock: systemClock{}, notify: notify}
}

// NewShippingAddressUsecaseWithClock is useful for tests.
func NewShippingAddressUsecaseWithClock(repo shipaddrdom.Repository, notify ChangeNotifier, clock Clock) *ShippingAddressUsecase {
	uc := NewShippingAddressUsecase(repo, notify)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// CreateInput mirrors the add-address form.
type CreateAddressInput struct {
	Label      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// Create adds an address for userID. When the new address is flagged
// default, any previously default address of the same user is unset in the
// same call, keeping the at-most-one-default invariant enforced at write
// time rather than by convention.
func (uc *ShippingAddressUsecase) Create(ctx context.Context, userID string, in CreateAddressInput) (shipaddrdom.ShippingAddress, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return shipaddrdom.ShippingAddress{}, ErrAddressInvalidArgument
	}

	now := uc.clock.Now()
	a, err := shipaddrdom.New(
		uuid.NewString(), uid,
		in.Label, in.Line1, in.Line2, in.City, in.State, in.PostalCode, in.Country,
		in.IsDefault, now,
	)
	if err != nil {
		return shipaddrdom.ShippingAddress{}, err
	}

	if a.IsDefault {
		if err := uc.unsetPreviousDefault(ctx, uid, ""); err != nil {
			return shipaddrdom.ShippingAddress{}, err
		}
	}

	if err := uc.repo.Upsert(ctx, a); err != nil {
		return shipaddrdom.ShippingAddress{}, err
	}
	uc.notify.Notify("shipping_addresses")
	return a, nil
}

// Update applies a partial update. Ownership is checked against userID.
func (uc *ShippingAddressUsecase) Update(ctx context.Context, userID, id string, p shipaddrdom.Patch) (shipaddrdom.ShippingAddress, error) {
	uid := strings.TrimSpace(userID)
	aid := strings.TrimSpace(id)
	if uid == "" || aid == "" {
		return shipaddrdom.ShippingAddress{}, ErrAddressInvalidArgument
	}

	cur, err := uc.repo.GetByID(ctx, aid)
	if err != nil {
		return shipaddrdom.ShippingAddress{}, err
	}
	if cur == nil {
		return shipaddrdom.ShippingAddress{}, ErrAddressNotFound
	}
	if cur.UserID != uid {
		return shipaddrdom.ShippingAddress{}, ErrAddressNotOwner
	}

	next, err := cur.Apply(p, uc.clock.Now())
	if err != nil {
		return shipaddrdom.ShippingAddress{}, err
	}

	if next.IsDefault && !cur.IsDefault {
		if err := uc.unsetPreviousDefault(ctx, uid, next.ID); err != nil {
			return shipaddrdom.ShippingAddress{}, err
		}
	}

	if err := uc.repo.Upsert(ctx, next); err != nil {
		return shipaddrdom.ShippingAddress{}, err
	}
	uc.notify.Notify("shipping_addresses")
	return next, nil
}

// Delete removes an address after an ownership check.
func (uc *ShippingAddressUsecase) Delete(ctx context.Context, userID, id string) error {
	uid := strings.TrimSpace(userID)
	aid := strings.TrimSpace(id)
	if uid == "" || aid == "" {
		return ErrAddressInvalidArgument
	}

	cur, err := uc.repo.GetByID(ctx, aid)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrAddressNotFound
	}
	if cur.UserID != uid {
		return ErrAddressNotOwner
	}

	if err := uc.repo.Delete(ctx, aid); err != nil {
		return err
	}
	uc.notify.Notify("shipping_addresses")
	return nil
}

// List returns the user's addresses, default-flagged entries first.
func (uc *ShippingAddressUsecase) List(ctx context.Context, userID string) ([]shipaddrdom.ShippingAddress, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrAddressInvalidArgument
	}

	addrs, err := uc.repo.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	shipaddrdom.SortDefaultFirst(addrs)
	return addrs, nil
}

// GetOwned returns the address only when it belongs to userID.
func (uc *ShippingAddressUsecase) GetOwned(ctx context.Context, userID, id string) (*shipaddrdom.ShippingAddress, error) {
	uid := strings.TrimSpace(userID)
	aid := strings.TrimSpace(id)
	if uid == "" || aid == "" {
		return nil, ErrAddressInvalidArgument
	}
	a, err := uc.repo.GetByID(ctx, aid)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAddressNotFound
	}
	if a.UserID != uid {
		return nil, ErrAddressNotOwner
	}
	return a, nil
}

// unsetPreviousDefault clears IsDefault on every other address of the user.
// Legacy data can hold several defaults at once, so all of them are cleared.
func (uc *ShippingAddressUsecase) unsetPreviousDefault(ctx context.Context, userID, keepID string) error {
	addrs, err := uc.repo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	now := uc.clock.Now()
	for _, a := range addrs {
		if !a.IsDefault || a.ID == keepID {
			continue
		}
		a.IsDefault = false
		a.UpdatedAt = now
		if err := uc.repo.Upsert(ctx, a); err != nil {
			log.Printf("[shippingAddress_usecase] unset previous default failed id=%s err=%v", a.ID, err)
			return err
		}
	}
	return nil
}
