package checkout

import (
	"errors"
	"strings"
	"time"
)

// Step is the wizard position. The flow is strictly linear:
// Contact(0) -> Shipping(1) -> Payment(2), with Back always allowed.
type Step int

const (
	StepContact Step = iota
	StepShipping
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// SessionTTL is how long an idle checkout session survives before the
// in-memory store sweeps it.
const SessionTTL = 30 * time.Minute

var (
	ErrInvalidSession = errors.New("checkout: invalid session")
	// ErrShippingIncomplete gates Shipping -> Payment: the user must have
	// selected an address or be composing a new one.
	ErrShippingIncomplete = errors.New("checkout: select or add a shipping address first")
	// ErrNotAtPayment guards Submit.
	ErrNotAtPayment = errors.New("checkout: submit is only valid on the payment step")
	ErrAtFirstStep  = errors.New("checkout: already at the first step")
)

// Contact is the step-0 form data.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Payment is the step-2 form data. Held only for the lifetime of the
// session; never persisted.
type Payment struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

// Session is the ephemeral wizard state for one user. It is created when
// checkout starts and destroyed on submit or abandon; it is never written to
// storage.
type Session struct {
	UserID string `json:"userId"`
	Step   Step   `json:"step"`

	Contact Contact `json:"contact"`

	SelectedAddressID string `json:"selectedAddressId,omitempty"`
	// AddingAddress marks the "new address" sub-form as open; it satisfies
	// the shipping gate on its own so the user can continue while typing.
	AddingAddress bool `json:"addingAddress"`

	Payment Payment `json:"payment"`

	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession starts a wizard at the Contact step.
func NewSession(userID string, now time.Time) (*Session, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrInvalidSession
	}
	return &Session{
		UserID:    uid,
		Step:      StepContact,
		StartedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetContact records step-0 data. Allowed at any step (Back keeps data
// editable).
func (s *Session) SetContact(c Contact, now time.Time) error {
	if s == nil {
		return ErrInvalidSession
	}
	s.Contact = Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
	}
	s.touch(now)
	return nil
}

// SelectAddress records the chosen address and closes the add-address
// sub-form.
func (s *Session) SelectAddress(addressID string, now time.Time) error {
	if s == nil {
		return ErrInvalidSession
	}
	s.SelectedAddressID = strings.TrimSpace(addressID)
	s.AddingAddress = false
	s.touch(now)
	return nil
}

// SetAddingAddress opens/closes the new-address sub-form.
func (s *Session) SetAddingAddress(adding bool, now time.Time) error {
	if s == nil {
		return ErrInvalidSession
	}
	s.AddingAddress = adding
	s.touch(now)
	return nil
}

// SetPayment records step-2 data.
func (s *Session) SetPayment(p Payment, now time.Time) error {
	if s == nil {
		return ErrInvalidSession
	}
	s.Payment = Payment{
		CardNumber: strings.TrimSpace(p.CardNumber),
		Expiry:     strings.TrimSpace(p.Expiry),
		CVC:        strings.TrimSpace(p.CVC),
	}
	s.touch(now)
	return nil
}

// Advance moves one step forward.
//   - Contact -> Shipping: unconditional
//   - Shipping -> Payment: requires a selected address or an open
//     add-address sub-form
//   - Payment: cannot advance; submission is a separate operation
func (s *Session) Advance(now time.Time) error {
	if s == nil {
		return ErrInvalidSession
	}
	switch s.Step {
	case StepContact:
		s.Step = StepShipping
	case StepShipping:
		if !s.ShippingComplete() {
			return ErrShippingIncomplete
		}
		s.Step = StepPayment
	case StepPayment:
		return ErrNotAtPayment
	default:
		return ErrInvalidSession
	}
	s.touch(now)
	return nil
}

// Back moves one step backward without discarding any entered data.
func (s *Session) Back(now time.Time) error {
	if s == nil {
		return ErrInvalidSession
	}
	if s.Step == StepContact {
		return ErrAtFirstStep
	}
	s.Step--
	s.touch(now)
	return nil
}

// ShippingComplete reports whether the shipping gate is satisfied.
func (s *Session) ShippingComplete() bool {
	if s == nil {
		return false
	}
	return s.SelectedAddressID != "" || s.AddingAddress
}

// CanSubmit reports whether the wizard is positioned for order submission.
func (s *Session) CanSubmit() bool {
	return s != nil && s.Step == StepPayment && s.ShippingComplete()
}

// Expired reports whether the session has idled past SessionTTL.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return now.Sub(s.UpdatedAt) > SessionTTL
}

func (s *Session) touch(now time.Time) {
	s.UpdatedAt = now
}
