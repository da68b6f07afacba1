package handler

import (
	"net/http"
	"strings"

	"straightenup/internal/adapters/in/http/middleware"
	usecase "straightenup/internal/application/usecase"
	cartdom "straightenup/internal/domain/cart"
)

// CartHandler serves the signed-in user's cart.
//
//	GET    /mall/cart                 current cart (created on first read)
//	DELETE /mall/cart                 clear
//	POST   /mall/cart/items           add item (merges same product)
//	PUT    /mall/cart/items/{id}      set quantity (0 removes)
//	DELETE /mall/cart/items/{id}      remove line
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

type cartResponse struct {
	*cartdom.Cart
	SubtotalCents int64 `json:"subtotalCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}

func cartJSON(c *cartdom.Cart) cartResponse {
	return cartResponse{
		Cart:          c,
		SubtotalCents: c.SubtotalCents(),
		ShippingCents: c.ShippingCents(),
		TotalCents:    c.TotalCents(),
	}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	itemsAt := strings.Index(path, "/cart/items")

	switch {
	case itemsAt < 0 && r.Method == http.MethodGet:
		c, err := h.uc.GetOrCreate(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cartJSON(c))

	case itemsAt < 0 && r.Method == http.MethodDelete:
		c, err := h.uc.Clear(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cartJSON(c))

	case itemsAt >= 0 && r.Method == http.MethodPost:
		h.handleAddItem(w, r, uid)

	case itemsAt >= 0 && r.Method == http.MethodPut:
		h.handleSetQty(w, r, uid, lastSegment(path, path[:itemsAt]+"/cart/items"))

	case itemsAt >= 0 && r.Method == http.MethodDelete:
		productID := lastSegment(path, path[:itemsAt]+"/cart/items")
		c, err := h.uc.RemoveItem(r.Context(), uid, productID)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cartJSON(c))

	default:
		methodNotAllowed(w)
	}
}

// addItemRequest tolerates the snapshot fields old clients send (name,
// unitPriceCents, imageUrl) but never reads them; the line snapshot is
// resolved from the catalog by productId.
type addItemRequest struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Qty            int    `json:"qty"`
	ImageURL       string `json:"imageUrl"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, uid string) {
	var req addItemRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	c, err := h.uc.AddItem(r.Context(), uid, req.ProductID, req.Qty)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartJSON(c))
}

type setQtyRequest struct {
	Qty int `json:"qty"`
}

func (h *CartHandler) handleSetQty(w http.ResponseWriter, r *http.Request, uid, productID string) {
	var req setQtyRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	c, err := h.uc.SetQty(r.Context(), uid, productID, req.Qty)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartJSON(c))
}
