package profile

import "context"

// Repository is a persistence port for Profile (Firestore: profiles,
// docId = Firebase uid).
type Repository interface {
	// GetByID returns (nil, nil) when not found.
	GetByID(ctx context.Context, uid string) (*Profile, error)

	// List returns all profiles (admin user list), newest first.
	List(ctx context.Context) ([]Profile, error)

	Upsert(ctx context.Context, p Profile) error
	Delete(ctx context.Context, uid string) error
}
