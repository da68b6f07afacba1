package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"straightenup/internal/application/security"
	usecase "straightenup/internal/application/usecase"
)

// AuthHandler serves /mall/auth/* (no bearer token required).
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) http.Handler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "auth handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	switch {
	case strings.HasSuffix(path, "/signup"):
		h.handleSignUp(w, r)
	case strings.HasSuffix(path, "/signin"):
		h.handleSignIn(w, r)
	case strings.HasSuffix(path, "/signout"):
		// Tokens are bearer-only; the client discards them. Nothing to
		// revoke server-side.
		w.WriteHeader(http.StatusNoContent)
	default:
		notFound(w)
	}
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	s, err := h.uc.SignUp(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.writeAuthErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *AuthHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	s, err := h.uc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// writeAuthErr keeps backend failure detail out of responses: validation
// failures list their field messages, everything else goes through the
// user-facing message table.
func (h *AuthHandler) writeAuthErr(w http.ResponseWriter, err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Errs))
		for _, e := range verr.Errs {
			msgs = append(msgs, strings.TrimPrefix(e.Error(), "security: "))
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"errors": msgs,
		})
		return
	}

	code := http.StatusUnauthorized
	if errors.Is(err, usecase.ErrAuthRateLimited) {
		code = http.StatusTooManyRequests
	}
	log.Printf("[auth_handler] auth failed err=%v", err)
	writeErr(w, code, security.UserMessage(err))
}
