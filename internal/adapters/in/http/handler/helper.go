// Package handler holds the HTTP handlers for the storefront (/mall) and
// the back office (/admin). Each handler is an http.Handler dispatching on
// method and path suffix; auth runs in middleware before any of them.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	usecase "straightenup/internal/application/usecase"
	checkoutdom "straightenup/internal/domain/checkout"
	forumdom "straightenup/internal/domain/forum"
	orderdom "straightenup/internal/domain/order"
	productdom "straightenup/internal/domain/product"
	supportdom "straightenup/internal/domain/support"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not found")
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// lastSegment returns the path element after prefix, "" when the path is
// exactly the prefix. "/mall/addresses/abc" with "/mall/addresses" -> "abc".
func lastSegment(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return ""
	}
	parts := strings.Split(rest, "/")
	return parts[len(parts)-1]
}

func toRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// writeUsecaseErr maps the sentinel errors of the application layer onto
// status codes. Unknown errors become a 500 with a generic body so internal
// details never leak to the client.
func writeUsecaseErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return

	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrAddressInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutInvalidArgument),
		errors.Is(err, usecase.ErrOrderInvalidArgument),
		errors.Is(err, usecase.ErrForumInvalidArgument),
		errors.Is(err, usecase.ErrSupportInvalidArgument),
		errors.Is(err, usecase.ErrProfileInvalidArgument),
		errors.Is(err, usecase.ErrProductInvalidArgument),
		errors.Is(err, usecase.ErrCurrencyInvalidArgument):
		writeErr(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, usecase.ErrCheckoutEmptyCart),
		errors.Is(err, usecase.ErrCheckoutNoAddress),
		errors.Is(err, usecase.ErrCheckoutNotSubmittable),
		errors.Is(err, checkoutdom.ErrShippingIncomplete),
		errors.Is(err, checkoutdom.ErrAtFirstStep),
		errors.Is(err, forumdom.ErrTopicLocked),
		errors.Is(err, forumdom.ErrAlreadyHidden),
		errors.Is(err, supportdom.ErrTicketClosed):
		writeErr(w, http.StatusConflict, err.Error())

	case errors.Is(err, usecase.ErrCheckoutNoSession),
		errors.Is(err, usecase.ErrCartNotFound),
		errors.Is(err, usecase.ErrAddressNotFound),
		errors.Is(err, usecase.ErrForumNotFound),
		errors.Is(err, usecase.ErrSupportNotFound),
		errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())

	case errors.Is(err, usecase.ErrAddressNotOwner),
		errors.Is(err, usecase.ErrOrderNotOwner),
		errors.Is(err, supportdom.ErrNotTicketUser):
		writeErr(w, http.StatusForbidden, err.Error())

	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
