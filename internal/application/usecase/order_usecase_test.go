package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "straightenup/internal/domain/order"
)

func testOrder(id, userID string) orderdom.Order {
	return orderdom.Order{
		ID:            id,
		UserID:        userID,
		Status:        orderdom.StatusPending,
		SubtotalCents: 2500,
		ShippingCents: 999,
		TotalCents:    3499,
		ShippingAddress: orderdom.Address{
			Line1:      "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "US",
		},
		Items: []orderdom.Item{
			{ID: "i1", ProductID: "p1", Name: "Posture Trainer", UnitPriceCents: 2500, Qty: 1},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func TestOrderUsecaseCreateSendsConfirmation(t *testing.T) {
	repo := newFakeOrderRepo()
	mailer := &fakeMailer{}
	notifier := &recordingNotifier{}
	uc := NewOrderUsecase(repo, mailer, notifier)

	require.NoError(t, uc.Create(context.Background(), testOrder("o1", "u1"), "jo@example.com"))

	got, err := uc.GetOwned(context.Background(), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusPending, got.Status)
	assert.Equal(t, []string{"jo@example.com"}, mailer.sent)
	assert.True(t, notifier.has("orders"))
}

func TestOrderUsecaseCreateSurvivesMailFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	mailer := &fakeMailer{err: assert.AnError}
	uc := NewOrderUsecase(repo, mailer, nil)

	require.NoError(t, uc.Create(context.Background(), testOrder("o1", "u1"), "jo@example.com"))

	_, err := uc.GetOwned(context.Background(), "u1", "o1")
	assert.NoError(t, err)
}

func TestOrderUsecaseGetOwnedRejectsForeignOrder(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), nil, nil)
	require.NoError(t, uc.Create(context.Background(), testOrder("o1", "u1"), ""))

	_, err := uc.GetOwned(context.Background(), "u2", "o1")
	assert.ErrorIs(t, err, ErrOrderNotOwner)

	_, err = uc.GetOwned(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderUsecaseListByUser(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), nil, nil)
	require.NoError(t, uc.Create(context.Background(), testOrder("o1", "u1"), ""))
	require.NoError(t, uc.Create(context.Background(), testOrder("o2", "u1"), ""))
	require.NoError(t, uc.Create(context.Background(), testOrder("o3", "u2"), ""))

	mine, err := uc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = uc.ListByUser(context.Background(), " ")
	assert.ErrorIs(t, err, ErrOrderInvalidArgument)
}

func TestOrderUsecaseUpdateStatus(t *testing.T) {
	notifier := &recordingNotifier{}
	uc := NewOrderUsecase(newFakeOrderRepo(), nil, notifier)
	require.NoError(t, uc.Create(context.Background(), testOrder("o1", "u1"), ""))

	require.NoError(t, uc.UpdateStatus(context.Background(), "o1", orderdom.StatusShipped))

	got, err := uc.GetOwned(context.Background(), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, got.Status)
	assert.True(t, notifier.has("orders"))
}

func TestOrderUsecaseUpdateStatusValidation(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), nil, nil)

	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), "o1", orderdom.Status("bogus")), ErrOrderInvalidArgument)
	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), "missing", orderdom.StatusPaid), ErrOrderNotFound)
}
