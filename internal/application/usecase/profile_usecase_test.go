package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profiledom "straightenup/internal/domain/profile"
)

func TestProfileUsecaseGetOrCreateDefaults(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUsecaseWithClock(repo, nil, fixedClock{testNow})

	p, err := uc.GetOrCreate(context.Background(), "uid-1", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.ID)
	assert.Equal(t, "jo", p.FullName)
	assert.Equal(t, profiledom.RoleUser, p.Role)
	assert.Equal(t, testNow, p.CreatedAt)
}

func TestProfileUsecaseGetOrCreateIsIdempotent(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUsecaseWithClock(repo, nil, fixedClock{testNow})

	first, err := uc.GetOrCreate(context.Background(), "uid-1", "jo@example.com")
	require.NoError(t, err)

	_, err = uc.Rename(context.Background(), "uid-1", "Jo Dev")
	require.NoError(t, err)

	again, err := uc.GetOrCreate(context.Background(), "uid-1", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Jo Dev", again.FullName)
}

func TestProfileUsecaseGetMissing(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileRepo(), nil)

	_, err := uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = uc.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrProfileInvalidArgument)
}

func TestProfileUsecaseRename(t *testing.T) {
	repo := newFakeProfileRepo()
	notifier := &recordingNotifier{}
	uc := NewProfileUsecaseWithClock(repo, notifier, fixedClock{testNow})

	_, err := uc.GetOrCreate(context.Background(), "uid-1", "jo@example.com")
	require.NoError(t, err)

	p, err := uc.Rename(context.Background(), "uid-1", "Jo Dev")
	require.NoError(t, err)
	assert.Equal(t, "Jo Dev", p.FullName)
	assert.True(t, notifier.has("profiles"))

	_, err = uc.Rename(context.Background(), "uid-1", "   ")
	assert.ErrorIs(t, err, profiledom.ErrInvalid)
}

func TestProfileUsecaseSetRole(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUsecaseWithClock(repo, nil, fixedClock{testNow})

	_, err := uc.GetOrCreate(context.Background(), "uid-1", "jo@example.com")
	require.NoError(t, err)

	p, err := uc.SetRole(context.Background(), "uid-1", profiledom.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, profiledom.RoleManager, p.Role)

	_, err = uc.SetRole(context.Background(), "uid-1", profiledom.Role("overlord"))
	assert.ErrorIs(t, err, profiledom.ErrInvalid)
}

func TestProfileUsecaseListUsers(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUsecaseWithClock(repo, nil, fixedClock{testNow})

	_, err := uc.GetOrCreate(context.Background(), "uid-1", "jo@example.com")
	require.NoError(t, err)
	_, err = uc.GetOrCreate(context.Background(), "uid-2", "sam@example.com")
	require.NoError(t, err)

	users, err := uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
