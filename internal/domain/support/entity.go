package support

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("support: not found")
	ErrInvalid       = errors.New("support: invalid")
	ErrTicketClosed  = errors.New("support: ticket is closed")
	ErrNotTicketUser = errors.New("support: ticket belongs to another user")
)

// Status lifecycle: open -> assigned -> closed.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAssigned Status = "assigned"
	StatusClosed   Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusClosed:
		return true
	}
	return false
}

// Ticket (Firestore: support_tickets).
type Ticket struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"userId" firestore:"userId"`
	Title  string `json:"title" firestore:"title"`
	Status Status `json:"status" firestore:"status"`

	// AssignedTo is the staff uid, empty while open.
	AssignedTo     string `json:"assignedTo,omitempty" firestore:"assignedTo"`
	AssignedToName string `json:"assignedToName,omitempty" firestore:"assignedToName"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Message (Firestore: support_messages).
type Message struct {
	ID           string    `json:"id" firestore:"id"`
	TicketID     string    `json:"ticketId" firestore:"ticketId"`
	UserID       string    `json:"userId" firestore:"userId"`
	AuthorName   string    `json:"authorName" firestore:"authorName"`
	Body         string    `json:"message" firestore:"message"`
	IsStaffReply bool      `json:"isStaffReply" firestore:"isStaffReply"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

func NewTicket(id, userID, title string, now time.Time) (Ticket, error) {
	t := Ticket{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Title:     strings.TrimSpace(title),
		Status:    StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if t.ID == "" || t.UserID == "" || t.Title == "" {
		return Ticket{}, ErrInvalid
	}
	return t, nil
}

func NewMessage(id, ticketID, userID, authorName, body string, isStaffReply bool, now time.Time) (Message, error) {
	m := Message{
		ID:           strings.TrimSpace(id),
		TicketID:     strings.TrimSpace(ticketID),
		UserID:       strings.TrimSpace(userID),
		AuthorName:   strings.TrimSpace(authorName),
		Body:         strings.TrimSpace(body),
		IsStaffReply: isStaffReply,
		CreatedAt:    now,
	}
	if m.ID == "" || m.TicketID == "" || m.UserID == "" || m.Body == "" {
		return Message{}, ErrInvalid
	}
	return m, nil
}

// Assign moves the ticket to a staff member. Closed tickets stay closed.
func (t *Ticket) Assign(staffUID, staffName string, now time.Time) error {
	if t == nil {
		return ErrInvalid
	}
	if t.Status == StatusClosed {
		return ErrTicketClosed
	}
	uid := strings.TrimSpace(staffUID)
	if uid == "" {
		return ErrInvalid
	}
	t.AssignedTo = uid
	t.AssignedToName = strings.TrimSpace(staffName)
	t.Status = StatusAssigned
	t.UpdatedAt = now
	return nil
}

func (t *Ticket) Close(now time.Time) error {
	if t == nil {
		return ErrInvalid
	}
	t.Status = StatusClosed
	t.UpdatedAt = now
	return nil
}
