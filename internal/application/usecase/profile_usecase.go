package usecase

import (
	"context"
	"errors"
	"strings"

	profiledom "straightenup/internal/domain/profile"
)

var (
	ErrProfileInvalidArgument = errors.New("profile_usecase: invalid argument")
	ErrProfileNotFound        = errors.New("profile_usecase: not found")
)

// ProfileUsecase coordinates profile reads/writes and the admin user list.
type ProfileUsecase struct {
	repo   profiledom.Repository
	clock  Clock
	notify ChangeNotifier
}

func NewProfileUsecase(repo profiledom.Repository, notify ChangeNotifier) *ProfileUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &ProfileUsecase{repo: repo, clock: systemClock{}, notify: notify}
}

// NewProfileUsecaseWithClock is useful for tests.
func NewProfileUsecaseWithClock(repo profiledom.Repository, notify ChangeNotifier, clock Clock) *ProfileUsecase {
	uc := NewProfileUsecase(repo, notify)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// GetOrCreate returns the profile for uid, creating the default one for a
// first sign-in (mirrors the signup-side insert being racy with sign-in).
func (uc *ProfileUsecase) GetOrCreate(ctx context.Context, uid, email string) (*profiledom.Profile, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrProfileInvalidArgument
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	fresh, err := profiledom.New(id, email, "", uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Get returns ErrProfileNotFound when absent.
func (uc *ProfileUsecase) Get(ctx context.Context, uid string) (*profiledom.Profile, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrProfileInvalidArgument
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Rename updates the display name (self-service).
func (uc *ProfileUsecase) Rename(ctx context.Context, uid, fullName string) (*profiledom.Profile, error) {
	p, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := p.Rename(fullName, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, *p); err != nil {
		return nil, err
	}
	uc.notify.Notify("profiles")
	return p, nil
}

// ListUsers returns every profile (admin user list).
func (uc *ProfileUsecase) ListUsers(ctx context.Context) ([]profiledom.Profile, error) {
	return uc.repo.List(ctx)
}

// SetRole changes a user's role (admin only; caller gates).
func (uc *ProfileUsecase) SetRole(ctx context.Context, uid string, role profiledom.Role) (*profiledom.Profile, error) {
	p, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := p.SetRole(role, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, *p); err != nil {
		return nil, err
	}
	uc.notify.Notify("profiles")
	return p, nil
}
