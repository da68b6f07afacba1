package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
	shipaddrdom "straightenup/internal/domain/shippingAddress"
)

// AddressHandler serves the signed-in user's address book.
//
//	GET    /mall/addresses         list (default first)
//	POST   /mall/addresses         create
//	GET    /mall/addresses/{id}
//	PATCH  /mall/addresses/{id}
//	DELETE /mall/addresses/{id}
type AddressHandler struct {
	uc *usecase.ShippingAddressUsecase
}

func NewAddressHandler(uc *usecase.ShippingAddressUsecase) http.Handler {
	return &AddressHandler{uc: uc}
}

func (h *AddressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "address handler is not configured")
		return
	}
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	id := ""
	if at := strings.Index(path, "/addresses/"); at >= 0 {
		id = lastSegment(path, path[:at]+"/addresses")
	}

	switch {
	case id == "" && r.Method == http.MethodGet:
		list, err := h.uc.List(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"addresses": list})

	case id == "" && r.Method == http.MethodPost:
		h.handleCreate(w, r, uid)

	case id != "" && r.Method == http.MethodGet:
		a, err := h.uc.GetOwned(r.Context(), uid, id)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)

	case id != "" && r.Method == http.MethodPatch:
		h.handlePatch(w, r, uid, id)

	case id != "" && r.Method == http.MethodDelete:
		if err := h.uc.Delete(r.Context(), uid, id); err != nil {
			writeUsecaseErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

type addressRequest struct {
	Label      string `json:"label"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

func (h *AddressHandler) handleCreate(w http.ResponseWriter, r *http.Request, uid string) {
	var req addressRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	a, err := h.uc.Create(r.Context(), uid, usecase.CreateAddressInput{
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

type addressPatchRequest struct {
	Label      *string `json:"label"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	IsDefault  *bool   `json:"isDefault"`
}

func (h *AddressHandler) handlePatch(w http.ResponseWriter, r *http.Request, uid, id string) {
	var req addressPatchRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	a, err := h.uc.Update(r.Context(), uid, id, shipaddrdom.Patch{
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
