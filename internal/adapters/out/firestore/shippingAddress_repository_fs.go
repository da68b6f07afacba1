package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shipaddrdom "straightenup/internal/domain/shippingAddress"
)

// ShippingAddressRepositoryFS implements shippingAddress.Repository.
//
// Collection: shipping_addresses, docId = address id (uuid), field userId
// carries ownership.
type ShippingAddressRepositoryFS struct {
	Client *firestore.Client
}

func NewShippingAddressRepositoryFS(client *firestore.Client) *ShippingAddressRepositoryFS {
	return &ShippingAddressRepositoryFS{Client: client}
}

func (r *ShippingAddressRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("shipping_addresses")
}

func (r *ShippingAddressRepositoryFS) GetByID(ctx context.Context, id string) (*shipaddrdom.ShippingAddress, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("shippingAddress_repository_fs: firestore client is nil")
	}
	aid := strings.TrimSpace(id)
	if aid == "" {
		return nil, errors.New("shippingAddress_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(aid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var a shipaddrdom.ShippingAddress
	if err := snap.DataTo(&a); err != nil {
		return nil, err
	}
	a.ID = aid
	return &a, nil
}

func (r *ShippingAddressRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]shipaddrdom.ShippingAddress, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("shippingAddress_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("shippingAddress_repository_fs: userID is empty")
	}

	it := r.col().Where("userId", "==", uid).Documents(ctx)
	defer it.Stop()

	var out []shipaddrdom.ShippingAddress
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var a shipaddrdom.ShippingAddress
		if err := snap.DataTo(&a); err != nil {
			return nil, err
		}
		a.ID = snap.Ref.ID
		out = append(out, a)
	}
	return out, nil
}

func (r *ShippingAddressRepositoryFS) Upsert(ctx context.Context, a shipaddrdom.ShippingAddress) error {
	if r == nil || r.Client == nil {
		return errors.New("shippingAddress_repository_fs: firestore client is nil")
	}
	aid := strings.TrimSpace(a.ID)
	if aid == "" {
		return errors.New("shippingAddress_repository_fs: address id is required")
	}

	_, err := r.col().Doc(aid).Set(ctx, a)
	return err
}

func (r *ShippingAddressRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("shippingAddress_repository_fs: firestore client is nil")
	}
	aid := strings.TrimSpace(id)
	if aid == "" {
		return errors.New("shippingAddress_repository_fs: id is empty")
	}

	_, err := r.col().Doc(aid).Delete(ctx)
	return err
}
