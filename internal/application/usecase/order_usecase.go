package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	orderdom "straightenup/internal/domain/order"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
	ErrOrderNotFound        = errors.New("order_usecase: not found")
	ErrOrderNotOwner        = errors.New("order_usecase: order belongs to another user")
)

// OrderMailer is the outbound port for the confirmation email. Sending is
// best-effort; a mail failure never fails the order.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order) error
}

// OrderUsecase coordinates order reads and admin status changes. Creation
// happens through CheckoutUsecase.Submit, which calls Create here.
type OrderUsecase struct {
	repo   orderdom.Repository
	mailer OrderMailer
	notify ChangeNotifier
}

func NewOrderUsecase(repo orderdom.Repository, mailer OrderMailer, notify ChangeNotifier) *OrderUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &OrderUsecase{repo: repo, mailer: mailer, notify: notify}
}

// Create persists the order and fires the confirmation email.
func (uc *OrderUsecase) Create(ctx context.Context, o orderdom.Order, contactEmail string) error {
	if err := uc.repo.Insert(ctx, o); err != nil {
		return err
	}
	uc.notify.Notify("orders")

	if uc.mailer != nil && strings.TrimSpace(contactEmail) != "" {
		if err := uc.mailer.SendOrderConfirmation(ctx, contactEmail, o); err != nil {
			log.Printf("[order_usecase] confirmation mail failed order=%s err=%v", o.ID, err)
		}
	}
	return nil
}

// GetOwned returns the order only when it belongs to userID.
func (uc *OrderUsecase) GetOwned(ctx context.Context, userID, id string) (*orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(id)
	if uid == "" || oid == "" {
		return nil, ErrOrderInvalidArgument
	}

	o, err := uc.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, orderdom.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != uid {
		return nil, ErrOrderNotOwner
	}
	return o, nil
}

// ListByUser returns the user's order history, newest first.
func (uc *OrderUsecase) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.repo.ListByUserID(ctx, uid)
}

// ListAll returns every order (admin back office).
func (uc *OrderUsecase) ListAll(ctx context.Context) ([]orderdom.Order, error) {
	return uc.repo.List(ctx)
}

// UpdateStatus moves an order to the given status (admin back office).
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, id string, s orderdom.Status) error {
	oid := strings.TrimSpace(id)
	if oid == "" || !s.Valid() {
		return ErrOrderInvalidArgument
	}
	if err := uc.repo.UpdateStatus(ctx, oid, s); err != nil {
		if errors.Is(err, orderdom.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	uc.notify.Notify("orders")
	return nil
}
