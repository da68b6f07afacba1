package profile

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("profile: not found")
	ErrInvalid  = errors.New("profile: invalid")
)

// Role is the coarse capability tier attached to a user.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Profile (Firestore: profiles, docId = Firebase uid).
type Profile struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	FullName string `json:"fullName" firestore:"fullName"`
	Role     Role   `json:"role" firestore:"role"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New creates a profile for a fresh signup. FullName falls back to the email
// local part when empty, matching the storefront display default.
func New(uid, email, fullName string, now time.Time) (Profile, error) {
	id := strings.TrimSpace(uid)
	mail := strings.TrimSpace(strings.ToLower(email))
	name := strings.TrimSpace(fullName)
	if id == "" || mail == "" {
		return Profile{}, ErrInvalid
	}
	if name == "" {
		if at := strings.Index(mail, "@"); at > 0 {
			name = mail[:at]
		} else {
			name = mail
		}
	}
	return Profile{
		ID:        id,
		Email:     mail,
		FullName:  name,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename updates the display name.
func (p *Profile) Rename(fullName string, now time.Time) error {
	if p == nil {
		return ErrInvalid
	}
	name := strings.TrimSpace(fullName)
	if name == "" {
		return ErrInvalid
	}
	p.FullName = name
	p.UpdatedAt = now
	return nil
}

// SetRole is admin-only at the usecase layer.
func (p *Profile) SetRole(r Role, now time.Time) error {
	if p == nil || !r.Valid() {
		return ErrInvalid
	}
	p.Role = r
	p.UpdatedAt = now
	return nil
}
