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

	scdom "straightenup/internal/domain/sitecontent"
)

const contactDocID = "contact"

// SiteContentRepositoryFS implements sitecontent.Repository.
//
// Collections:
// - site_content     (single doc "contact")
// - office_locations (docId = location id)
type SiteContentRepositoryFS struct {
	Client *firestore.Client
}

func NewSiteContentRepositoryFS(client *firestore.Client) *SiteContentRepositoryFS {
	return &SiteContentRepositoryFS{Client: client}
}

func (r *SiteContentRepositoryFS) guard() error {
	if r == nil || r.Client == nil {
		return errors.New("sitecontent_repository_fs: firestore client is nil")
	}
	return nil
}

func (r *SiteContentRepositoryFS) GetContactInfo(ctx context.Context) (*scdom.ContactInfo, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}

	snap, err := r.Client.Collection("site_content").Doc(contactDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var c scdom.ContactInfo
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SiteContentRepositoryFS) SaveContactInfo(ctx context.Context, c scdom.ContactInfo) error {
	if err := r.guard(); err != nil {
		return err
	}
	_, err := r.Client.Collection("site_content").Doc(contactDocID).Set(ctx, c)
	return err
}

func (r *SiteContentRepositoryFS) ListOfficeLocations(ctx context.Context) ([]scdom.OfficeLocation, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}

	it := r.Client.Collection("office_locations").Documents(ctx)
	defer it.Stop()

	var out []scdom.OfficeLocation
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var o scdom.OfficeLocation
		if err := snap.DataTo(&o); err != nil {
			return nil, err
		}
		o.ID = snap.Ref.ID
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SiteContentRepositoryFS) UpsertOfficeLocation(ctx context.Context, o scdom.OfficeLocation) error {
	if err := r.guard(); err != nil {
		return err
	}
	id := strings.TrimSpace(o.ID)
	if id == "" {
		return errors.New("sitecontent_repository_fs: office id is required")
	}
	_, err := r.Client.Collection("office_locations").Doc(id).Set(ctx, o)
	return err
}

func (r *SiteContentRepositoryFS) DeleteOfficeLocation(ctx context.Context, id string) error {
	if err := r.guard(); err != nil {
		return err
	}
	_, err := r.Client.Collection("office_locations").Doc(strings.TrimSpace(id)).Delete(ctx)
	return err
}
