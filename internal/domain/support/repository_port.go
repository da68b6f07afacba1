package support

import "context"

// Repository is a persistence port for support collections.
//
// Storage (Firestore):
// - support_tickets  (docId = ticket id)
// - support_messages (docId = message id, field ticketId)
type Repository interface {
	// GetTicket returns (nil, nil) when not found.
	GetTicket(ctx context.Context, id string) (*Ticket, error)
	// ListTicketsByUserID returns the user's tickets, newest first.
	ListTicketsByUserID(ctx context.Context, userID string) ([]Ticket, error)
	// ListTickets returns all tickets (staff view), newest first.
	ListTickets(ctx context.Context) ([]Ticket, error)
	UpsertTicket(ctx context.Context, t Ticket) error

	ListMessages(ctx context.Context, ticketID string) ([]Message, error)
	InsertMessage(ctx context.Context, m Message) error
}
