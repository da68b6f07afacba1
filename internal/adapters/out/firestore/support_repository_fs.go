package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	supportdom "straightenup/internal/domain/support"
)

// SupportRepositoryFS implements support.Repository.
//
// Collections:
// - support_tickets  (docId = ticket id, field userId)
// - support_messages (docId = message id, field ticketId)
type SupportRepositoryFS struct {
	Client *firestore.Client
}

func NewSupportRepositoryFS(client *firestore.Client) *SupportRepositoryFS {
	return &SupportRepositoryFS{Client: client}
}

func (r *SupportRepositoryFS) tickets() *firestore.CollectionRef {
	return r.Client.Collection("support_tickets")
}

func (r *SupportRepositoryFS) messages() *firestore.CollectionRef {
	return r.Client.Collection("support_messages")
}

func (r *SupportRepositoryFS) guard() error {
	if r == nil || r.Client == nil {
		return errors.New("support_repository_fs: firestore client is nil")
	}
	return nil
}

func (r *SupportRepositoryFS) GetTicket(ctx context.Context, id string) (*supportdom.Ticket, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	tid := strings.TrimSpace(id)
	if tid == "" {
		return nil, errors.New("support_repository_fs: ticket id is empty")
	}

	snap, err := r.tickets().Doc(tid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var t supportdom.Ticket
	if err := snap.DataTo(&t); err != nil {
		return nil, err
	}
	t.ID = tid
	return &t, nil
}

func (r *SupportRepositoryFS) ListTicketsByUserID(ctx context.Context, userID string) ([]supportdom.Ticket, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("support_repository_fs: userID is empty")
	}
	return r.collectTickets(r.tickets().Where("userId", "==", uid).Documents(ctx))
}

func (r *SupportRepositoryFS) ListTickets(ctx context.Context) ([]supportdom.Ticket, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	return r.collectTickets(r.tickets().Documents(ctx))
}

func (r *SupportRepositoryFS) collectTickets(it *firestore.DocumentIterator) ([]supportdom.Ticket, error) {
	defer it.Stop()

	var out []supportdom.Ticket
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var t supportdom.Ticket
		if err := snap.DataTo(&t); err != nil {
			return nil, err
		}
		t.ID = snap.Ref.ID
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SupportRepositoryFS) UpsertTicket(ctx context.Context, t supportdom.Ticket) error {
	if err := r.guard(); err != nil {
		return err
	}
	id := strings.TrimSpace(t.ID)
	if id == "" {
		return errors.New("support_repository_fs: ticket id is required")
	}
	_, err := r.tickets().Doc(id).Set(ctx, t)
	return err
}

func (r *SupportRepositoryFS) ListMessages(ctx context.Context, ticketID string) ([]supportdom.Message, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	tid := strings.TrimSpace(ticketID)
	if tid == "" {
		return nil, errors.New("support_repository_fs: ticket id is empty")
	}

	it := r.messages().Where("ticketId", "==", tid).Documents(ctx)
	defer it.Stop()

	var out []supportdom.Message
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var m supportdom.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = snap.Ref.ID
		out = append(out, m)
	}

	// chat order, oldest first
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *SupportRepositoryFS) InsertMessage(ctx context.Context, m supportdom.Message) error {
	if err := r.guard(); err != nil {
		return err
	}
	id := strings.TrimSpace(m.ID)
	if id == "" {
		return errors.New("support_repository_fs: message id is required")
	}
	_, err := r.messages().Doc(id).Create(ctx, m)
	return err
}
