package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func TestContactToShippingIsUnconditional(t *testing.T) {
	s, err := NewSession("u1", t0)
	require.NoError(t, err)
	require.Equal(t, StepContact, s.Step)

	require.NoError(t, s.Advance(t0))
	assert.Equal(t, StepShipping, s.Step)
}

func TestShippingGateBlocksPayment(t *testing.T) {
	s, _ := NewSession("u1", t0)
	require.NoError(t, s.Advance(t0)) // -> Shipping

	err := s.Advance(t0)
	assert.ErrorIs(t, err, ErrShippingIncomplete)
	assert.Equal(t, StepShipping, s.Step)
}

func TestSelectedAddressOpensPayment(t *testing.T) {
	s, _ := NewSession("u1", t0)
	require.NoError(t, s.Advance(t0))
	require.NoError(t, s.SelectAddress("addr-1", t0))

	require.NoError(t, s.Advance(t0))
	assert.Equal(t, StepPayment, s.Step)
	assert.True(t, s.CanSubmit())
}

func TestAddingAddressAloneSatisfiesGate(t *testing.T) {
	s, _ := NewSession("u1", t0)
	require.NoError(t, s.Advance(t0))
	require.NoError(t, s.SetAddingAddress(true, t0))

	require.NoError(t, s.Advance(t0))
	assert.Equal(t, StepPayment, s.Step)
}

func TestSelectAddressClosesSubForm(t *testing.T) {
	s, _ := NewSession("u1", t0)
	require.NoError(t, s.SetAddingAddress(true, t0))
	require.NoError(t, s.SelectAddress("addr-1", t0))
	assert.False(t, s.AddingAddress)
	assert.Equal(t, "addr-1", s.SelectedAddressID)
}

func TestBackKeepsEnteredData(t *testing.T) {
	s, _ := NewSession("u1", t0)
	require.NoError(t, s.SetContact(Contact{Name: "Ada", Email: "ada@x.co"}, t0))
	require.NoError(t, s.Advance(t0))
	require.NoError(t, s.SelectAddress("addr-1", t0))
	require.NoError(t, s.Advance(t0))

	require.NoError(t, s.Back(t0))
	assert.Equal(t, StepShipping, s.Step)
	assert.Equal(t, "addr-1", s.SelectedAddressID)
	assert.Equal(t, "Ada", s.Contact.Name)

	require.NoError(t, s.Back(t0))
	assert.Equal(t, StepContact, s.Step)
	assert.ErrorIs(t, s.Back(t0), ErrAtFirstStep)
}

func TestCannotAdvancePastPayment(t *testing.T) {
	s, _ := NewSession("u1", t0)
	require.NoError(t, s.Advance(t0))
	require.NoError(t, s.SelectAddress("a", t0))
	require.NoError(t, s.Advance(t0))

	assert.ErrorIs(t, s.Advance(t0), ErrNotAtPayment)
}

func TestCanSubmitOnlyAtPayment(t *testing.T) {
	s, _ := NewSession("u1", t0)
	assert.False(t, s.CanSubmit())
	require.NoError(t, s.Advance(t0))
	require.NoError(t, s.SelectAddress("a", t0))
	assert.False(t, s.CanSubmit())
	require.NoError(t, s.Advance(t0))
	assert.True(t, s.CanSubmit())
}

func TestExpiry(t *testing.T) {
	s, _ := NewSession("u1", t0)
	assert.False(t, s.Expired(t0.Add(SessionTTL)))
	assert.True(t, s.Expired(t0.Add(SessionTTL+time.Second)))
}

func TestNewSessionRequiresUser(t *testing.T) {
	_, err := NewSession(" ", t0)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
