package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	checkoutdom "straightenup/internal/domain/checkout"
	orderdom "straightenup/internal/domain/order"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutNoSession       = errors.New("checkout_usecase: no active checkout session")
	ErrCheckoutEmptyCart       = errors.New("checkout_usecase: cart is empty")
	ErrCheckoutNoAddress       = errors.New("checkout_usecase: no shipping address selected")
	ErrCheckoutNotSubmittable  = errors.New("checkout_usecase: wizard is not at the payment step")
)

// PaymentAuthorizer is the outbound payment integration point. The shipped
// implementation is a fixed-delay placeholder; a real gateway slots in here
// without touching the wizard.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, userID string, amountCents int64) error
}

// CheckoutUsecase drives the 3-step wizard over an in-memory session store.
// Sessions are ephemeral: one per user, destroyed on submit or abandon,
// swept after checkoutdom.SessionTTL of inactivity.
type CheckoutUsecase struct {
	mu       sync.Mutex
	sessions map[string]*checkoutdom.Session

	cartUC     *CartUsecase
	addrUC     *ShippingAddressUsecase
	orderUC    *OrderUsecase
	authorizer PaymentAuthorizer
	clock      Clock
}

func NewCheckoutUsecase(cartUC *CartUsecase, addrUC *ShippingAddressUsecase, orderUC *OrderUsecase, authorizer PaymentAuthorizer) *CheckoutUsecase {
	return &CheckoutUsecase{
		sessions:   map[string]*checkoutdom.Session{},
		cartUC:     cartUC,
		addrUC:     addrUC,
		orderUC:    orderUC,
		authorizer: authorizer,
		clock:      systemClock{},
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(cartUC *CartUsecase, addrUC *ShippingAddressUsecase, orderUC *OrderUsecase, authorizer PaymentAuthorizer, clock Clock) *CheckoutUsecase {
	uc := NewCheckoutUsecase(cartUC, addrUC, orderUC, authorizer)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Start opens a wizard at the Contact step. Re-entering checkout discards
// any previous session (the storefront resets to step 0 on reopen).
// An empty cart cannot enter checkout.
func (uc *CheckoutUsecase) Start(ctx context.Context, userID string) (*checkoutdom.Session, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCheckoutInvalidArgument
	}

	c, err := uc.cartUC.GetOrCreate(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrCheckoutEmptyCart
	}

	s, err := checkoutdom.NewSession(uid, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.sessions[uid] = s
	uc.mu.Unlock()
	return s, nil
}

// Get returns the user's active session, dropping it if expired.
func (uc *CheckoutUsecase) Get(userID string) (*checkoutdom.Session, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCheckoutInvalidArgument
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[uid]
	if !ok {
		return nil, ErrCheckoutNoSession
	}
	if s.Expired(uc.clock.Now()) {
		delete(uc.sessions, uid)
		return nil, ErrCheckoutNoSession
	}
	return s, nil
}

// SetContact records step-0 form data.
func (uc *CheckoutUsecase) SetContact(userID string, c checkoutdom.Contact) (*checkoutdom.Session, error) {
	return uc.mutate(userID, func(s *checkoutdom.Session) error {
		return s.SetContact(c, uc.clock.Now())
	})
}

// SelectAddress records the chosen shipping address after an ownership
// check, and closes the add-address sub-form.
func (uc *CheckoutUsecase) SelectAddress(ctx context.Context, userID, addressID string) (*checkoutdom.Session, error) {
	if _, err := uc.addrUC.GetOwned(ctx, userID, addressID); err != nil {
		return nil, err
	}
	return uc.mutate(userID, func(s *checkoutdom.Session) error {
		return s.SelectAddress(addressID, uc.clock.Now())
	})
}

// SetAddingAddress opens/closes the new-address sub-form.
func (uc *CheckoutUsecase) SetAddingAddress(userID string, adding bool) (*checkoutdom.Session, error) {
	return uc.mutate(userID, func(s *checkoutdom.Session) error {
		return s.SetAddingAddress(adding, uc.clock.Now())
	})
}

// SetPayment records step-2 form data.
func (uc *CheckoutUsecase) SetPayment(userID string, p checkoutdom.Payment) (*checkoutdom.Session, error) {
	return uc.mutate(userID, func(s *checkoutdom.Session) error {
		return s.SetPayment(p, uc.clock.Now())
	})
}

// Advance moves the wizard forward (gated per step).
func (uc *CheckoutUsecase) Advance(userID string) (*checkoutdom.Session, error) {
	return uc.mutate(userID, func(s *checkoutdom.Session) error {
		return s.Advance(uc.clock.Now())
	})
}

// Back moves the wizard one step back, keeping entered data.
func (uc *CheckoutUsecase) Back(userID string) (*checkoutdom.Session, error) {
	return uc.mutate(userID, func(s *checkoutdom.Session) error {
		return s.Back(uc.clock.Now())
	})
}

// Abandon discards the session; the next open starts back at step 0.
func (uc *CheckoutUsecase) Abandon(userID string) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return
	}
	uc.mu.Lock()
	delete(uc.sessions, uid)
	uc.mu.Unlock()
}

// Submit finalizes the wizard:
//  1. authorize payment (placeholder integration point)
//  2. consume the cart and persist the order + confirmation mail
//  3. destroy the session
//
// On authorization failure the session stays on the Payment step so the
// user can retry; nothing has been consumed yet.
func (uc *CheckoutUsecase) Submit(ctx context.Context, userID string) (orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return orderdom.Order{}, ErrCheckoutInvalidArgument
	}

	s, err := uc.Get(uid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if !s.CanSubmit() {
		return orderdom.Order{}, ErrCheckoutNotSubmittable
	}
	// AddingAddress alone satisfies the step gate, but by submit time the
	// composed address must have been saved and selected.
	if s.SelectedAddressID == "" {
		return orderdom.Order{}, ErrCheckoutNoAddress
	}

	addr, err := uc.addrUC.GetOwned(ctx, uid, s.SelectedAddressID)
	if err != nil {
		return orderdom.Order{}, err
	}

	cart, err := uc.cartUC.GetOrCreate(ctx, uid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if len(cart.Items) == 0 {
		return orderdom.Order{}, ErrCheckoutEmptyCart
	}

	subtotal := cart.SubtotalCents()
	shipping := cart.ShippingCents()

	if err := uc.authorizer.Authorize(ctx, uid, subtotal+shipping); err != nil {
		log.Printf("[checkout_usecase] payment authorization failed user=%s err=%v", uid, err)
		return orderdom.Order{}, err
	}

	now := uc.clock.Now()
	snap, err := cart.ConsumeAll(now)
	if err != nil {
		return orderdom.Order{}, err
	}

	items := make([]orderdom.Item, 0, len(snap))
	for _, it := range snap {
		items = append(items, orderdom.Item{
			ID:             uuid.NewString(),
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Qty:            it.Qty,
			ImageURL:       it.ImageURL,
		})
	}

	o, err := orderdom.New(uuid.NewString(), uid, items, subtotal, shipping, orderdom.Address{
		Label:      addr.Label,
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}, now)
	if err != nil {
		return orderdom.Order{}, err
	}

	if err := uc.orderUC.Create(ctx, o, s.Contact.Email); err != nil {
		return orderdom.Order{}, err
	}

	// Persist the emptied cart only after the order exists.
	if err := uc.cartUC.repo.Upsert(ctx, cart); err != nil {
		log.Printf("[checkout_usecase] cart clear after order failed user=%s err=%v", uid, err)
	}
	uc.cartUC.notify.Notify("carts")

	uc.Abandon(uid)
	return o, nil
}

// SweepExpired drops idle sessions; called periodically from main.
func (uc *CheckoutUsecase) SweepExpired() int {
	now := uc.clock.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	n := 0
	for uid, s := range uc.sessions {
		if s.Expired(now) {
			delete(uc.sessions, uid)
			n++
		}
	}
	return n
}

func (uc *CheckoutUsecase) mutate(userID string, fn func(*checkoutdom.Session) error) (*checkoutdom.Session, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCheckoutInvalidArgument
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[uid]
	if !ok || s.Expired(uc.clock.Now()) {
		delete(uc.sessions, uid)
		return nil, ErrCheckoutNoSession
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, nil
}
