package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	profiledom "straightenup/internal/domain/profile"
)

// ProfileRepositoryFS implements profile.Repository.
//
// Collection: profiles, docId = Firebase uid.
type ProfileRepositoryFS struct {
	Client *firestore.Client
}

func NewProfileRepositoryFS(client *firestore.Client) *ProfileRepositoryFS {
	return &ProfileRepositoryFS{Client: client}
}

func (r *ProfileRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("profiles")
}

func (r *ProfileRepositoryFS) GetByID(ctx context.Context, uid string) (*profiledom.Profile, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("profile_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("profile_repository_fs: uid is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var p profiledom.Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (r *ProfileRepositoryFS) List(ctx context.Context) ([]profiledom.Profile, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("profile_repository_fs: firestore client is nil")
	}

	it := r.col().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer it.Stop()

	var out []profiledom.Profile
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var p profiledom.Profile
		if err := snap.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = snap.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

func (r *ProfileRepositoryFS) Upsert(ctx context.Context, p profiledom.Profile) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return errors.New("profile_repository_fs: profile id is required")
	}

	_, err := r.col().Doc(id).Set(ctx, p)
	return err
}

func (r *ProfileRepositoryFS) Delete(ctx context.Context, uid string) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("profile_repository_fs: uid is empty")
	}

	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
