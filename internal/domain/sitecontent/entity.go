package sitecontent

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("sitecontent: not found")
	ErrInvalid  = errors.New("sitecontent: invalid")
)

// WorkingHours as shown on the contact page.
type WorkingHours struct {
	Weekdays string `json:"weekdays" firestore:"weekdays"`
	Saturday string `json:"saturday" firestore:"saturday"`
	Sunday   string `json:"sunday" firestore:"sunday"`
}

// ContactInfo is the single site-wide contact record
// (Firestore: site_content, docId "contact").
type ContactInfo struct {
	Email        string       `json:"email" firestore:"email"`
	Phone        string       `json:"phone" firestore:"phone"`
	Address      string       `json:"address" firestore:"address"`
	WorkingHours WorkingHours `json:"workingHours" firestore:"workingHours"`
}

// DefaultContactInfo seeds the contact record on first boot.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Email:   "contact@straighten-up.com",
		Phone:   "+1 (555) 123-4567",
		Address: "123 Posture Lane, Health City, 12345",
		WorkingHours: WorkingHours{
			Weekdays: "9:00 AM - 6:00 PM",
			Saturday: "10:00 AM - 4:00 PM",
			Sunday:   "Closed",
		},
	}
}

// Patch for partial contact updates; nil means "leave unchanged".
type ContactPatch struct {
	Email        *string
	Phone        *string
	Address      *string
	WorkingHours *WorkingHours
}

func (c ContactInfo) Apply(p ContactPatch) ContactInfo {
	out := c
	if p.Email != nil {
		out.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		out.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		out.Address = strings.TrimSpace(*p.Address)
	}
	if p.WorkingHours != nil {
		out.WorkingHours = *p.WorkingHours
	}
	return out
}

// OfficeLocation (Firestore: office_locations).
type OfficeLocation struct {
	ID      string  `json:"id" firestore:"id"`
	Name    string  `json:"name" firestore:"name"`
	Address string  `json:"address" firestore:"address"`
	Lat     float64 `json:"lat" firestore:"lat"`
	Lng     float64 `json:"lng" firestore:"lng"`
}

func NewOfficeLocation(id, name, address string, lat, lng float64) (OfficeLocation, error) {
	o := OfficeLocation{
		ID:      strings.TrimSpace(id),
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(address),
		Lat:     lat,
		Lng:     lng,
	}
	if o.ID == "" || o.Name == "" || o.Address == "" {
		return OfficeLocation{}, ErrInvalid
	}
	if o.Lat < -90 || o.Lat > 90 || o.Lng < -180 || o.Lng > 180 {
		return OfficeLocation{}, ErrInvalid
	}
	return o, nil
}
