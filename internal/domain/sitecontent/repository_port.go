package sitecontent

import "context"

// Repository is a persistence port for site content.
//
// Storage (Firestore):
// - site_content     (single doc "contact")
// - office_locations (docId = location id)
type Repository interface {
	// GetContactInfo returns (nil, nil) when the doc was never written.
	GetContactInfo(ctx context.Context) (*ContactInfo, error)
	SaveContactInfo(ctx context.Context, c ContactInfo) error

	ListOfficeLocations(ctx context.Context) ([]OfficeLocation, error)
	UpsertOfficeLocation(ctx context.Context, o OfficeLocation) error
	DeleteOfficeLocation(ctx context.Context, id string) error
}
