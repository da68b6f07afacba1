package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
	orderdom "straightenup/internal/domain/order"
)

// OrderHandler serves the signed-in user's order history (read only; orders
// are created by checkout submit).
//
//	GET /mall/orders
//	GET /mall/orders/{id}
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	id := ""
	if at := strings.Index(path, "/orders/"); at >= 0 {
		id = lastSegment(path, path[:at]+"/orders")
	}

	if id == "" {
		list, err := h.uc.ListByUser(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": list})
		return
	}

	o, err := h.uc.GetOwned(r.Context(), uid, id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// AdminOrderHandler serves the back-office order list and status changes.
//
//	GET   /admin/orders
//	PATCH /admin/orders/{id}      {"status": "shipped"}
type AdminOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	id := lastSegment(path, "/admin/orders")

	switch {
	case id == "" && r.Method == http.MethodGet:
		list, err := h.uc.ListAll(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": list})

	case id != "" && r.Method == http.MethodPatch:
		var req struct {
			Status string `json:"status"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		s := orderdom.Status(strings.TrimSpace(req.Status))
		if !s.Valid() {
			writeErr(w, http.StatusBadRequest, "unknown order status")
			return
		}
		if err := h.uc.UpdateStatus(r.Context(), id, s); err != nil {
			writeUsecaseErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}
