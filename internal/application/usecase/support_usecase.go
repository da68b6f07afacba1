package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	supportdom "straightenup/internal/domain/support"
)

var (
	ErrSupportInvalidArgument = errors.New("support_usecase: invalid argument")
	ErrSupportNotFound        = errors.New("support_usecase: not found")
)

// SupportUsecase coordinates the support-ticket chat for both the customer
// side and the staff back office.
type SupportUsecase struct {
	repo   supportdom.Repository
	clock  Clock
	notify ChangeNotifier
}

func NewSupportUsecase(repo supportdom.Repository, notify ChangeNotifier) *SupportUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &SupportUsecase{repo: repo, clock: systemClock{}, notify: notify}
}

// NewSupportUsecaseWithClock is useful for tests.
func NewSupportUsecaseWithClock(repo supportdom.Repository, notify ChangeNotifier, clock Clock) *SupportUsecase {
	uc := NewSupportUsecase(repo, notify)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// CreateTicket opens a ticket with an initial message.
func (uc *SupportUsecase) CreateTicket(ctx context.Context, userID, userName, title, firstMessage string) (supportdom.Ticket, error) {
	now := uc.clock.Now()
	t, err := supportdom.NewTicket(uuid.NewString(), userID, title, now)
	if err != nil {
		return supportdom.Ticket{}, err
	}
	if err := uc.repo.UpsertTicket(ctx, t); err != nil {
		return supportdom.Ticket{}, err
	}

	if strings.TrimSpace(firstMessage) != "" {
		m, err := supportdom.NewMessage(uuid.NewString(), t.ID, userID, userName, firstMessage, false, now)
		if err != nil {
			return supportdom.Ticket{}, err
		}
		if err := uc.repo.InsertMessage(ctx, m); err != nil {
			return supportdom.Ticket{}, err
		}
	}

	uc.notify.Notify("support_tickets")
	return t, nil
}

// ListMine returns the user's tickets.
func (uc *SupportUsecase) ListMine(ctx context.Context, userID string) ([]supportdom.Ticket, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrSupportInvalidArgument
	}
	return uc.repo.ListTicketsByUserID(ctx, uid)
}

// ListAll returns every ticket (staff view).
func (uc *SupportUsecase) ListAll(ctx context.Context) ([]supportdom.Ticket, error) {
	return uc.repo.ListTickets(ctx)
}

// Messages returns the ticket chat for its owner or staff.
func (uc *SupportUsecase) Messages(ctx context.Context, userID, ticketID string, isStaff bool) ([]supportdom.Message, error) {
	t, err := uc.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isStaff && t.UserID != strings.TrimSpace(userID) {
		return nil, supportdom.ErrNotTicketUser
	}
	return uc.repo.ListMessages(ctx, t.ID)
}

// PostMessage appends to the ticket chat. Staff replies are flagged; the
// owner may only write to their own open tickets.
func (uc *SupportUsecase) PostMessage(ctx context.Context, userID, userName, ticketID, body string, isStaff bool) (supportdom.Message, error) {
	t, err := uc.getTicket(ctx, ticketID)
	if err != nil {
		return supportdom.Message{}, err
	}
	if !isStaff && t.UserID != strings.TrimSpace(userID) {
		return supportdom.Message{}, supportdom.ErrNotTicketUser
	}
	if t.Status == supportdom.StatusClosed {
		return supportdom.Message{}, supportdom.ErrTicketClosed
	}

	m, err := supportdom.NewMessage(uuid.NewString(), t.ID, userID, userName, body, isStaff, uc.clock.Now())
	if err != nil {
		return supportdom.Message{}, err
	}
	if err := uc.repo.InsertMessage(ctx, m); err != nil {
		return supportdom.Message{}, err
	}
	uc.notify.Notify("support_messages")
	return m, nil
}

// Assign puts a staff member on the ticket (staff only; caller gates).
func (uc *SupportUsecase) Assign(ctx context.Context, ticketID, staffUID, staffName string) (supportdom.Ticket, error) {
	t, err := uc.getTicket(ctx, ticketID)
	if err != nil {
		return supportdom.Ticket{}, err
	}
	if err := t.Assign(staffUID, staffName, uc.clock.Now()); err != nil {
		return supportdom.Ticket{}, err
	}
	if err := uc.repo.UpsertTicket(ctx, *t); err != nil {
		return supportdom.Ticket{}, err
	}
	uc.notify.Notify("support_tickets")
	return *t, nil
}

// Close ends the ticket (staff only; caller gates).
func (uc *SupportUsecase) Close(ctx context.Context, ticketID string) (supportdom.Ticket, error) {
	t, err := uc.getTicket(ctx, ticketID)
	if err != nil {
		return supportdom.Ticket{}, err
	}
	if err := t.Close(uc.clock.Now()); err != nil {
		return supportdom.Ticket{}, err
	}
	if err := uc.repo.UpsertTicket(ctx, *t); err != nil {
		return supportdom.Ticket{}, err
	}
	uc.notify.Notify("support_tickets")
	return *t, nil
}

func (uc *SupportUsecase) getTicket(ctx context.Context, ticketID string) (*supportdom.Ticket, error) {
	tid := strings.TrimSpace(ticketID)
	if tid == "" {
		return nil, ErrSupportInvalidArgument
	}
	t, err := uc.repo.GetTicket(ctx, tid)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrSupportNotFound
	}
	return t, nil
}
