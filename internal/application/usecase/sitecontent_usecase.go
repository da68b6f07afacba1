package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	scdom "straightenup/internal/domain/sitecontent"
)

var ErrSiteContentInvalidArgument = errors.New("sitecontent_usecase: invalid argument")

// SiteContentUsecase coordinates the contact page record and office
// locations.
type SiteContentUsecase struct {
	repo   scdom.Repository
	notify ChangeNotifier
}

func NewSiteContentUsecase(repo scdom.Repository, notify ChangeNotifier) *SiteContentUsecase {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &SiteContentUsecase{repo: repo, notify: notify}
}

// ContactInfo returns the stored record, falling back to the seed defaults
// when nothing was ever written.
func (uc *SiteContentUsecase) ContactInfo(ctx context.Context) (scdom.ContactInfo, error) {
	c, err := uc.repo.GetContactInfo(ctx)
	if err != nil {
		return scdom.ContactInfo{}, err
	}
	if c == nil {
		return scdom.DefaultContactInfo(), nil
	}
	return *c, nil
}

// UpdateContactInfo applies a partial update (admin only; caller gates).
func (uc *SiteContentUsecase) UpdateContactInfo(ctx context.Context, p scdom.ContactPatch) (scdom.ContactInfo, error) {
	cur, err := uc.ContactInfo(ctx)
	if err != nil {
		return scdom.ContactInfo{}, err
	}
	next := cur.Apply(p)
	if err := uc.repo.SaveContactInfo(ctx, next); err != nil {
		return scdom.ContactInfo{}, err
	}
	uc.notify.Notify("site_content")
	return next, nil
}

func (uc *SiteContentUsecase) ListOffices(ctx context.Context) ([]scdom.OfficeLocation, error) {
	return uc.repo.ListOfficeLocations(ctx)
}

func (uc *SiteContentUsecase) AddOffice(ctx context.Context, name, address string, lat, lng float64) (scdom.OfficeLocation, error) {
	o, err := scdom.NewOfficeLocation(uuid.NewString(), name, address, lat, lng)
	if err != nil {
		return scdom.OfficeLocation{}, err
	}
	if err := uc.repo.UpsertOfficeLocation(ctx, o); err != nil {
		return scdom.OfficeLocation{}, err
	}
	uc.notify.Notify("office_locations")
	return o, nil
}

func (uc *SiteContentUsecase) UpdateOffice(ctx context.Context, o scdom.OfficeLocation) (scdom.OfficeLocation, error) {
	if strings.TrimSpace(o.ID) == "" {
		return scdom.OfficeLocation{}, ErrSiteContentInvalidArgument
	}
	checked, err := scdom.NewOfficeLocation(o.ID, o.Name, o.Address, o.Lat, o.Lng)
	if err != nil {
		return scdom.OfficeLocation{}, err
	}
	if err := uc.repo.UpsertOfficeLocation(ctx, checked); err != nil {
		return scdom.OfficeLocation{}, err
	}
	uc.notify.Notify("office_locations")
	return checked, nil
}

func (uc *SiteContentUsecase) RemoveOffice(ctx context.Context, id string) error {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return ErrSiteContentInvalidArgument
	}
	if err := uc.repo.DeleteOfficeLocation(ctx, oid); err != nil {
		return err
	}
	uc.notify.Notify("office_locations")
	return nil
}
