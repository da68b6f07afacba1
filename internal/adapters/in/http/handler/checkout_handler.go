package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
	checkoutdom "straightenup/internal/domain/checkout"
)

// CheckoutHandler drives the 3-step wizard.
//
//	POST /mall/checkout/start
//	GET  /mall/checkout            current session
//	POST /mall/checkout/contact    {name,email}
//	POST /mall/checkout/shipping   {addressId} or {addingAddress}
//	POST /mall/checkout/payment    {cardNumber,expiry,cvc}
//	POST /mall/checkout/next
//	POST /mall/checkout/back
//	POST /mall/checkout/abandon
//	POST /mall/checkout/submit     -> created order
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

// sessionResponse masks the card fields; the client only needs to know the
// payment form was filled and which card it ended with.
type sessionResponse struct {
	UserID            string              `json:"userId"`
	Step              checkoutdom.Step    `json:"step"`
	Contact           checkoutdom.Contact `json:"contact"`
	SelectedAddressID string              `json:"selectedAddressId,omitempty"`
	AddingAddress     bool                `json:"addingAddress"`
	CardLast4         string              `json:"cardLast4,omitempty"`
	CanSubmit         bool                `json:"canSubmit"`
}

func sessionJSON(s *checkoutdom.Session) sessionResponse {
	last4 := ""
	if n := len(s.Payment.CardNumber); n >= 4 {
		last4 = s.Payment.CardNumber[n-4:]
	}
	return sessionResponse{
		UserID:            s.UserID,
		Step:              s.Step,
		Contact:           s.Contact,
		SelectedAddressID: s.SelectedAddressID,
		AddingAddress:     s.AddingAddress,
		CardLast4:         last4,
		CanSubmit:         s.CanSubmit(),
	}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if r.Method == http.MethodGet {
		s, err := h.uc.Get(uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionJSON(s))
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var (
		s   *checkoutdom.Session
		err error
	)
	switch {
	case strings.HasSuffix(path, "/start"):
		s, err = h.uc.Start(r.Context(), uid)
	case strings.HasSuffix(path, "/contact"):
		s, err = h.contact(r, uid)
	case strings.HasSuffix(path, "/shipping"):
		s, err = h.shipping(r, uid)
	case strings.HasSuffix(path, "/payment"):
		s, err = h.payment(r, uid)
	case strings.HasSuffix(path, "/next"):
		s, err = h.uc.Advance(uid)
	case strings.HasSuffix(path, "/back"):
		s, err = h.uc.Back(uid)
	case strings.HasSuffix(path, "/abandon"):
		h.uc.Abandon(uid)
		w.WriteHeader(http.StatusNoContent)
		return
	case strings.HasSuffix(path, "/submit"):
		o, serr := h.uc.Submit(r.Context(), uid)
		if serr != nil {
			writeUsecaseErr(w, serr)
			return
		}
		writeJSON(w, http.StatusCreated, o)
		return
	default:
		notFound(w)
		return
	}

	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionJSON(s))
}

func (h *CheckoutHandler) contact(r *http.Request, uid string) (*checkoutdom.Session, error) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		return nil, usecase.ErrCheckoutInvalidArgument
	}
	return h.uc.SetContact(uid, checkoutdom.Contact{Name: req.Name, Email: req.Email})
}

func (h *CheckoutHandler) shipping(r *http.Request, uid string) (*checkoutdom.Session, error) {
	var req struct {
		AddressID     string `json:"addressId"`
		AddingAddress *bool  `json:"addingAddress"`
	}
	if err := readJSON(r, &req); err != nil {
		return nil, usecase.ErrCheckoutInvalidArgument
	}
	if req.AddingAddress != nil {
		return h.uc.SetAddingAddress(uid, *req.AddingAddress)
	}
	return h.uc.SelectAddress(r.Context(), uid, req.AddressID)
}

func (h *CheckoutHandler) payment(r *http.Request, uid string) (*checkoutdom.Session, error) {
	var req struct {
		CardNumber string `json:"cardNumber"`
		Expiry     string `json:"expiry"`
		CVC        string `json:"cvc"`
	}
	if err := readJSON(r, &req); err != nil {
		return nil, usecase.ErrCheckoutInvalidArgument
	}
	return h.uc.SetPayment(uid, checkoutdom.Payment{CardNumber: req.CardNumber, Expiry: req.Expiry, CVC: req.CVC})
}
