package handler

import (
	"net/http"
	"strings"

	usecase "straightenup/internal/application/usecase"
	scdom "straightenup/internal/domain/sitecontent"
)

// SiteContentHandler serves the public contact page data.
//
//	GET /mall/contact
//	GET /mall/offices
type SiteContentHandler struct {
	uc *usecase.SiteContentUsecase
}

func NewSiteContentHandler(uc *usecase.SiteContentUsecase) http.Handler {
	return &SiteContentHandler{uc: uc}
}

func (h *SiteContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "site content handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	switch {
	case strings.HasSuffix(path, "/contact"):
		info, err := h.uc.ContactInfo(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)

	case strings.HasSuffix(path, "/offices"):
		offices, err := h.uc.ListOffices(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"offices": offices})

	default:
		notFound(w)
	}
}

// AdminSiteContentHandler edits the contact record and office pins.
//
//	PATCH  /admin/contact
//	GET    /admin/offices
//	POST   /admin/offices
//	PUT    /admin/offices/{id}
//	DELETE /admin/offices/{id}
type AdminSiteContentHandler struct {
	uc *usecase.SiteContentUsecase
}

func NewAdminSiteContentHandler(uc *usecase.SiteContentUsecase) http.Handler {
	return &AdminSiteContentHandler{uc: uc}
}

func (h *AdminSiteContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "site content handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if strings.HasSuffix(path, "/contact") && r.Method == http.MethodPatch {
		h.handleContactPatch(w, r)
		return
	}

	officeID := ""
	if at := strings.Index(path, "/offices/"); at >= 0 {
		officeID = lastSegment(path, path[:at]+"/offices")
	}

	switch {
	case officeID == "" && r.Method == http.MethodGet:
		offices, err := h.uc.ListOffices(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"offices": offices})

	case officeID == "" && r.Method == http.MethodPost:
		var req officeRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		o, err := h.uc.AddOffice(r.Context(), req.Name, req.Address, req.Lat, req.Lng)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, o)

	case officeID != "" && r.Method == http.MethodPut:
		var req officeRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		o, err := h.uc.UpdateOffice(r.Context(), scdom.OfficeLocation{
			ID:      officeID,
			Name:    req.Name,
			Address: req.Address,
			Lat:     req.Lat,
			Lng:     req.Lng,
		})
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, o)

	case officeID != "" && r.Method == http.MethodDelete:
		if err := h.uc.RemoveOffice(r.Context(), officeID); err != nil {
			writeUsecaseErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

type officeRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (h *AdminSiteContentHandler) handleContactPatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        *string             `json:"email"`
		Phone        *string             `json:"phone"`
		Address      *string             `json:"address"`
		WorkingHours *scdom.WorkingHours `json:"workingHours"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	info, err := h.uc.UpdateContactInfo(r.Context(), scdom.ContactPatch{
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		WorkingHours: req.WorkingHours,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
