package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	supportdom "straightenup/internal/domain/support"
)

func newSupportFixture() (*SupportUsecase, *fakeSupportRepo) {
	repo := newFakeSupportRepo()
	return NewSupportUsecaseWithClock(repo, nil, fixedClock{testNow}), repo
}

func TestSupportCreateTicketWithFirstMessage(t *testing.T) {
	uc, repo := newSupportFixture()
	ctx := context.Background()

	tk, err := uc.CreateTicket(ctx, "user-1", "Jo", "Band stopped vibrating", "It no longer buzzes when I slouch.")
	require.NoError(t, err)
	assert.Equal(t, supportdom.StatusOpen, tk.Status)

	msgs, err := repo.ListMessages(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].IsStaffReply)
}

func TestSupportMessagesOwnerOnly(t *testing.T) {
	uc, _ := newSupportFixture()
	ctx := context.Background()

	tk, err := uc.CreateTicket(ctx, "user-1", "Jo", "Help", "First message")
	require.NoError(t, err)

	_, err = uc.Messages(ctx, "user-2", tk.ID, false)
	assert.ErrorIs(t, err, supportdom.ErrNotTicketUser)

	// staff can read any ticket
	msgs, err := uc.Messages(ctx, "staff-1", tk.ID, true)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestSupportPostMessageToClosedTicketRejected(t *testing.T) {
	uc, _ := newSupportFixture()
	ctx := context.Background()

	tk, err := uc.CreateTicket(ctx, "user-1", "Jo", "Help", "")
	require.NoError(t, err)
	_, err = uc.Close(ctx, tk.ID)
	require.NoError(t, err)

	_, err = uc.PostMessage(ctx, "user-1", "Jo", tk.ID, "Still broken", false)
	assert.ErrorIs(t, err, supportdom.ErrTicketClosed)
}

func TestSupportStaffReplyFlagged(t *testing.T) {
	uc, _ := newSupportFixture()
	ctx := context.Background()

	tk, err := uc.CreateTicket(ctx, "user-1", "Jo", "Help", "")
	require.NoError(t, err)

	m, err := uc.PostMessage(ctx, "staff-1", "Sam (Support)", tk.ID, "Try a firmware reset.", true)
	require.NoError(t, err)
	assert.True(t, m.IsStaffReply)
}

func TestSupportAssignMovesTicketToAssigned(t *testing.T) {
	uc, repo := newSupportFixture()
	ctx := context.Background()

	tk, err := uc.CreateTicket(ctx, "user-1", "Jo", "Help", "")
	require.NoError(t, err)

	got, err := uc.Assign(ctx, tk.ID, "staff-1", "Sam")
	require.NoError(t, err)
	assert.Equal(t, supportdom.StatusAssigned, got.Status)
	assert.Equal(t, "staff-1", got.AssignedTo)

	stored, err := repo.GetTicket(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, supportdom.StatusAssigned, stored.Status)
}

func TestSupportAssignClosedTicketRejected(t *testing.T) {
	uc, _ := newSupportFixture()
	ctx := context.Background()

	tk, err := uc.CreateTicket(ctx, "user-1", "Jo", "Help", "")
	require.NoError(t, err)
	_, err = uc.Close(ctx, tk.ID)
	require.NoError(t, err)

	_, err = uc.Assign(ctx, tk.ID, "staff-1", "Sam")
	assert.ErrorIs(t, err, supportdom.ErrTicketClosed)
}

func TestSupportListMineFiltersByUser(t *testing.T) {
	uc, _ := newSupportFixture()
	ctx := context.Background()

	_, err := uc.CreateTicket(ctx, "user-1", "Jo", "Mine", "")
	require.NoError(t, err)
	_, err = uc.CreateTicket(ctx, "user-2", "Sam", "Theirs", "")
	require.NoError(t, err)

	mine, err := uc.ListMine(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSupportMissingTicketIsNotFound(t *testing.T) {
	uc, _ := newSupportFixture()

	_, err := uc.Messages(context.Background(), "user-1", "no-such", false)
	assert.ErrorIs(t, err, ErrSupportNotFound)
}
