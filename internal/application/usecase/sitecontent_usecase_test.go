package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scdom "straightenup/internal/domain/sitecontent"
)

func TestSiteContentContactFallsBackToDefaults(t *testing.T) {
	uc := NewSiteContentUsecase(newFakeSiteContentRepo(), nil)

	c, err := uc.ContactInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scdom.DefaultContactInfo(), c)
}

func TestSiteContentUpdateContactPatch(t *testing.T) {
	repo := newFakeSiteContentRepo()
	notifier := &recordingNotifier{}
	uc := NewSiteContentUsecase(repo, notifier)

	phone := "+1 (555) 999-0000"
	next, err := uc.UpdateContactInfo(context.Background(), scdom.ContactPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, next.Phone)
	// Untouched fields keep the seed values.
	assert.Equal(t, scdom.DefaultContactInfo().Email, next.Email)
	assert.True(t, notifier.has("site_content"))

	stored, err := uc.ContactInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, phone, stored.Phone)
}

func TestSiteContentOfficeLifecycle(t *testing.T) {
	notifier := &recordingNotifier{}
	uc := NewSiteContentUsecase(newFakeSiteContentRepo(), notifier)

	o, err := uc.AddOffice(context.Background(), "HQ", "123 Posture Lane", 40.7, -74.0)
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.True(t, notifier.has("office_locations"))

	o.Name = "Headquarters"
	updated, err := uc.UpdateOffice(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, "Headquarters", updated.Name)

	offices, err := uc.ListOffices(context.Background())
	require.NoError(t, err)
	require.Len(t, offices, 1)

	require.NoError(t, uc.RemoveOffice(context.Background(), o.ID))
	offices, err = uc.ListOffices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, offices)
}

func TestSiteContentOfficeValidation(t *testing.T) {
	uc := NewSiteContentUsecase(newFakeSiteContentRepo(), nil)

	_, err := uc.AddOffice(context.Background(), "", "somewhere", 0, 0)
	assert.ErrorIs(t, err, scdom.ErrInvalid)

	_, err = uc.AddOffice(context.Background(), "HQ", "somewhere", 120, 0)
	assert.ErrorIs(t, err, scdom.ErrInvalid)

	_, err = uc.UpdateOffice(context.Background(), scdom.OfficeLocation{Name: "HQ", Address: "x"})
	assert.ErrorIs(t, err, ErrSiteContentInvalidArgument)

	assert.ErrorIs(t, uc.RemoveOffice(context.Background(), "  "), ErrSiteContentInvalidArgument)
}
