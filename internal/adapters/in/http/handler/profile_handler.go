package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
	profiledom "straightenup/internal/domain/profile"
)

// ProfileHandler serves the signed-in user's own profile.
//
//	GET   /mall/me
//	PATCH /mall/me    {"fullName": ...}
type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

func NewProfileHandler(uc *usecase.ProfileUsecase) http.Handler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "profile handler is not configured")
		return
	}
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.uc.Get(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPatch:
		var req struct {
			FullName string `json:"fullName"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		p, err := h.uc.Rename(r.Context(), uid, req.FullName)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	default:
		methodNotAllowed(w)
	}
}

// AdminUserHandler serves the back-office user list and role changes
// (admin only; manager role cannot touch users).
//
//	GET   /admin/users
//	PATCH /admin/users/{uid}    {"role": "manager"}
type AdminUserHandler struct {
	uc *usecase.ProfileUsecase
}

func NewAdminUserHandler(uc *usecase.ProfileUsecase) http.Handler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "user handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	uid := lastSegment(path, "/admin/users")

	switch {
	case uid == "" && r.Method == http.MethodGet:
		users, err := h.uc.ListUsers(r.Context())
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users})

	case uid != "" && r.Method == http.MethodPatch:
		var req struct {
			Role string `json:"role"`
		}
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		role := profiledom.Role(strings.TrimSpace(req.Role))
		if !role.Valid() {
			writeErr(w, http.StatusBadRequest, "unknown role")
			return
		}
		p, err := h.uc.SetRole(r.Context(), uid, role)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	default:
		methodNotAllowed(w)
	}
}
