package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
)

// SupportHandler serves the signed-in user's support tickets.
//
//	GET  /mall/support/tickets
//	POST /mall/support/tickets                {title,message}
//	GET  /mall/support/tickets/{id}/messages
//	POST /mall/support/tickets/{id}/messages  {message}
type SupportHandler struct {
	uc *usecase.SupportUsecase
}

func NewSupportHandler(uc *usecase.SupportUsecase) http.Handler {
	return &SupportHandler{uc: uc}
}

func (h *SupportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "support handler is not configured")
		return
	}
	p, ok := middleware.CurrentProfile(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	onMessages := strings.HasSuffix(path, "/messages")

	switch {
	case !onMessages && r.Method == http.MethodGet:
		tickets, err := h.uc.ListMine(r.Context(), p.ID)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tickets": tickets})

	case !onMessages && r.Method == http.MethodPost:
		var req struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		tk, err := h.uc.CreateTicket(r.Context(), p.ID, p.FullName, req.Title, req.Message)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tk)

	case onMessages && r.Method == http.MethodGet:
		id := lastSegment(strings.TrimSuffix(path, "/messages"), "/support/tickets")
		msgs, err := h.uc.Messages(r.Context(), p.ID, id, false)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})

	case onMessages && r.Method == http.MethodPost:
		id := lastSegment(strings.TrimSuffix(path, "/messages"), "/support/tickets")
		var req struct {
			Message string `json:"message"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		m, err := h.uc.PostMessage(r.Context(), p.ID, p.FullName, id, req.Message, false)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)

	default:
		methodNotAllowed(w)
	}
}

// AdminSupportHandler serves the staff side of ticketing.
//
//	GET  /admin/support/tickets
//	GET  /admin/support/tickets/{id}/messages
//	POST /admin/support/tickets/{id}/messages  {message} (flagged staff)
//	POST /admin/support/tickets/{id}/assign    assign to caller
//	POST /admin/support/tickets/{id}/close
type AdminSupportHandler struct {
	uc *usecase.SupportUsecase
}

func NewAdminSupportHandler(uc *usecase.SupportUsecase) http.Handler {
	return &AdminSupportHandler{uc: uc}
}

func (h *AdminSupportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "support handler is not configured")
		return
	}
	p, ok := middleware.CurrentProfile(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case strings.HasSuffix(path, "/support/tickets") && r.Method == http.MethodGet:
		tickets, err := h.uc.ListAll(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tickets": tickets})

	case strings.HasSuffix(path, "/messages") && r.Method == http.MethodGet:
		id := lastSegment(strings.TrimSuffix(path, "/messages"), "/support/tickets")
		msgs, err := h.uc.Messages(r.Context(), p.ID, id, true)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})

	case strings.HasSuffix(path, "/messages") && r.Method == http.MethodPost:
		id := lastSegment(strings.TrimSuffix(path, "/messages"), "/support/tickets")
		var req struct {
			Message string `json:"message"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		m, err := h.uc.PostMessage(r.Context(), p.ID, p.FullName, id, req.Message, true)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)

	case strings.HasSuffix(path, "/assign") && r.Method == http.MethodPost:
		id := lastSegment(strings.TrimSuffix(path, "/assign"), "/support/tickets")
		tk, err := h.uc.Assign(r.Context(), id, p.ID, p.FullName)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tk)

	case strings.HasSuffix(path, "/close") && r.Method == http.MethodPost:
		id := lastSegment(strings.TrimSuffix(path, "/close"), "/support/tickets")
		tk, err := h.uc.Close(r.Context(), id)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tk)

	default:
		methodNotAllowed(w)
	}
}
