package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "straightenup/internal/domain/cart"
	checkoutdom "straightenup/internal/domain/checkout"
	orderdom "straightenup/internal/domain/order"
	productdom "straightenup/internal/domain/product"
)

type checkoutFixture struct {
	cartRepo  *fakeCartRepo
	addrRepo  *fakeAddressRepo
	orderRepo *fakeOrderRepo
	catalog   *fakeCatalog
	mailer    *fakeMailer
	auth      *fakeAuthorizer
	clock     *steppingClock
	uc        *CheckoutUsecase
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		cartRepo:  newFakeCartRepo(),
		addrRepo:  newFakeAddressRepo(),
		orderRepo: newFakeOrderRepo(),
		catalog:   newFakeCatalog(productdom.Product{ID: "p1", Name: "Posture Trainer", PriceCents: 2500, InStock: true}),
		mailer:    &fakeMailer{},
		auth:      &fakeAuthorizer{},
		clock:     &steppingClock{t: testNow},
	}
	cartUC := NewCartUsecaseWithClock(f.cartRepo, f.catalog, nil, f.clock)
	addrUC := NewShippingAddressUsecaseWithClock(f.addrRepo, nil, f.clock)
	orderUC := NewOrderUsecase(f.orderRepo, f.mailer, nil)
	f.uc = NewCheckoutUsecaseWithClock(cartUC, addrUC, orderUC, f.auth, f.clock)
	return f
}

func (f *checkoutFixture) seedCart(t *testing.T, userID string) {
	t.Helper()
	cartUC := NewCartUsecaseWithClock(f.cartRepo, f.catalog, nil, f.clock)
	_, err := cartUC.AddItem(context.Background(), userID, "p1", 1)
	require.NoError(t, err)
}

func (f *checkoutFixture) seedAddress(t *testing.T, userID string) string {
	t.Helper()
	addrUC := NewShippingAddressUsecaseWithClock(f.addrRepo, nil, f.clock)
	a, err := addrUC.Create(context.Background(), userID, CreateAddressInput{
		Label:      "Home",
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
		IsDefault:  true,
	})
	require.NoError(t, err)
	return a.ID
}

// walks the wizard to the payment step with everything filled in
func (f *checkoutFixture) toPayment(t *testing.T, userID, addressID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.uc.Start(ctx, userID)
	require.NoError(t, err)
	_, err = f.uc.SetContact(userID, checkoutdom.Contact{Name: "Jo Doe", Email: "jo@example.com"})
	require.NoError(t, err)
	_, err = f.uc.Advance(userID)
	require.NoError(t, err)
	_, err = f.uc.SelectAddress(ctx, userID, addressID)
	require.NoError(t, err)
	_, err = f.uc.Advance(userID)
	require.NoError(t, err)
	_, err = f.uc.SetPayment(userID, checkoutdom.Payment{CardNumber: "4242424242424242", Expiry: "12/27", CVC: "123"})
	require.NoError(t, err)
}

func TestCheckoutStartRequiresNonEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Start(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestCheckoutStartOpensAtContactStep(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")

	s, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdom.StepContact, s.Step)
}

func TestCheckoutRestartDiscardsPreviousSession(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")

	ctx := context.Background()
	_, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)
	_, err = f.uc.SetContact("user-1", checkoutdom.Contact{Name: "Jo", Email: "jo@example.com"})
	require.NoError(t, err)
	_, err = f.uc.Advance("user-1")
	require.NoError(t, err)

	s, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdom.StepContact, s.Step)
	assert.Empty(t, s.Contact.Name)
}

func TestCheckoutAdvanceToPaymentRequiresShipping(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")

	ctx := context.Background()
	_, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)
	_, err = f.uc.Advance("user-1")
	require.NoError(t, err)

	_, err = f.uc.Advance("user-1")
	assert.ErrorIs(t, err, checkoutdom.ErrShippingIncomplete)

	// opening the add-address form satisfies the step gate
	_, err = f.uc.SetAddingAddress("user-1", true)
	require.NoError(t, err)
	s, err := f.uc.Advance("user-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdom.StepPayment, s.Step)
}

func TestCheckoutSelectAddressRejectsForeignAddress(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")
	otherID := f.seedAddress(t, "user-2")

	ctx := context.Background()
	_, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)
	_, err = f.uc.Advance("user-1")
	require.NoError(t, err)

	_, err = f.uc.SelectAddress(ctx, "user-1", otherID)
	assert.ErrorIs(t, err, ErrAddressNotOwner)
}

func TestCheckoutBackKeepsEnteredData(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")
	addrID := f.seedAddress(t, "user-1")
	f.toPayment(t, "user-1", addrID)

	s, err := f.uc.Back("user-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdom.StepShipping, s.Step)
	assert.Equal(t, addrID, s.SelectedAddressID)
	assert.Equal(t, "jo@example.com", s.Contact.Email)
}

func TestCheckoutSubmitCreatesOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")
	addrID := f.seedAddress(t, "user-1")
	f.toPayment(t, "user-1", addrID)

	ctx := context.Background()
	o, err := f.uc.Submit(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, orderdom.StatusPending, o.Status)
	assert.Equal(t, int64(2500), o.SubtotalCents)
	assert.Equal(t, int64(cartdom.ShippingFlatCents), o.ShippingCents)
	assert.Equal(t, int64(2500+cartdom.ShippingFlatCents), o.TotalCents)
	assert.Equal(t, "1 Main St", o.ShippingAddress.Line1)
	assert.Equal(t, 1, f.auth.calls)

	// order persisted, confirmation sent to the contact email
	stored, err := f.orderRepo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.TotalCents, stored.TotalCents)
	assert.Equal(t, []string{"jo@example.com"}, f.mailer.sent)

	// cart is emptied and the session is gone
	cart, err := f.cartRepo.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
	_, err = f.uc.Get("user-1")
	assert.ErrorIs(t, err, ErrCheckoutNoSession)
}

func TestCheckoutSubmitRequiresSelectedAddress(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")

	ctx := context.Background()
	_, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)
	_, err = f.uc.Advance("user-1")
	require.NoError(t, err)
	_, err = f.uc.SetAddingAddress("user-1", true)
	require.NoError(t, err)
	_, err = f.uc.Advance("user-1")
	require.NoError(t, err)

	_, err = f.uc.Submit(ctx, "user-1")
	assert.ErrorIs(t, err, ErrCheckoutNoAddress)
}

func TestCheckoutSubmitBeforePaymentStepRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")

	ctx := context.Background()
	_, err := f.uc.Start(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.uc.Submit(ctx, "user-1")
	assert.ErrorIs(t, err, ErrCheckoutNotSubmittable)
}

func TestCheckoutSubmitAuthFailureKeepsSessionAndCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")
	addrID := f.seedAddress(t, "user-1")
	f.toPayment(t, "user-1", addrID)
	f.auth.err = errors.New("card declined")

	ctx := context.Background()
	_, err := f.uc.Submit(ctx, "user-1")
	require.Error(t, err)

	s, err := f.uc.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutdom.StepPayment, s.Step)

	cart, err := f.cartRepo.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Len(t, cart.Items, 1)
	assert.Empty(t, f.orderRepo.orders)
}

func TestCheckoutSweepExpiredDropsIdleSessions(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "user-1")

	_, err := f.uc.Start(context.Background(), "user-1")
	require.NoError(t, err)

	f.clock.t = testNow.Add(checkoutdom.SessionTTL + time.Minute)
	assert.Equal(t, 1, f.uc.SweepExpired())

	_, err = f.uc.Get("user-1")
	assert.ErrorIs(t, err, ErrCheckoutNoSession)
}
