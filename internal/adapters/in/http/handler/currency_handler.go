package handler

import (
	"net/http"
	"strconv"
	"strings"

	usecase "straightenup/internal/application/usecase"
)

// CurrencyHandler serves the cached exchange-rate table.
//
//	GET /mall/currency/rates
//	GET /mall/currency/convert?amount=100&from=USD&to=EUR
type CurrencyHandler struct {
	uc *usecase.CurrencyUsecase
}

func NewCurrencyHandler(uc *usecase.CurrencyUsecase) http.Handler {
	return &CurrencyHandler{uc: uc}
}

func (h *CurrencyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "currency handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	switch {
	case strings.HasSuffix(path, "/rates"):
		writeJSON(w, http.StatusOK, map[string]any{"base": "USD", "rates": h.uc.Rates()})

	case strings.HasSuffix(path, "/convert"):
		q := r.URL.Query()
		amount, err := strconv.ParseFloat(strings.TrimSpace(q.Get("amount")), 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "amount must be a number")
			return
		}
		got, err := h.uc.Convert(amount, q.Get("from"), q.Get("to"))
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"amount": got,
			"from":   strings.ToUpper(strings.TrimSpace(q.Get("from"))),
			"to":     strings.ToUpper(strings.TrimSpace(q.Get("to"))),
		})

	default:
		notFound(w)
	}
}
