package handler

import (
	"io"
	"net/http"
	"strings"

	usecase "straightenup/internal/application/usecase"
	productdom "straightenup/internal/domain/product"
)

// ProductHandler serves the public catalog.
//
//	GET /mall/products             ?category=&inStock=1
//	GET /mall/products/{id}
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) http.Handler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "product handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	id := ""
	if at := strings.Index(path, "/products/"); at >= 0 {
		id = lastSegment(path, path[:at]+"/products")
	}

	if id == "" {
		list, err := h.uc.List(r.Context(), productdom.Filter{
			Category:    strings.TrimSpace(r.URL.Query().Get("category")),
			InStockOnly: r.URL.Query().Get("inStock") == "1",
		})
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list})
		return
	}

	p, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AdminProductHandler serves the back-office catalog editor.
//
//	GET    /admin/products
//	POST   /admin/products
//	GET    /admin/products/{id}
//	PATCH  /admin/products/{id}
//	DELETE /admin/products/{id}
//	PUT    /admin/products/{id}/image    raw image body
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) http.Handler {
	return &AdminProductHandler{uc: uc}
}

const maxImageBytes = 8 << 20

func (h *AdminProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "product handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if strings.HasSuffix(path, "/image") && r.Method == http.MethodPut {
		h.handleImage(w, r, lastSegment(strings.TrimSuffix(path, "/image"), "/admin/products"))
		return
	}

	id := lastSegment(path, "/admin/products")
	switch {
	case id == "" && r.Method == http.MethodGet:
		list, err := h.uc.List(r.Context(), productdom.Filter{})
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list})

	case id == "" && r.Method == http.MethodPost:
		h.handleCreate(w, r)

	case id != "" && r.Method == http.MethodGet:
		p, err := h.uc.Get(r.Context(), id)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case id != "" && r.Method == http.MethodPatch:
		h.handlePatch(w, r, id)

	case id != "" && r.Method == http.MethodDelete:
		if err := h.uc.Delete(r.Context(), id); err != nil {
			writeUsecaseErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

type productRequest struct {
	Name        string   `json:"name"`
	PriceCents  int64    `json:"priceCents"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	Features    []string `json:"features"`
	InStock     bool     `json:"inStock"`
	PreOrder    bool     `json:"preOrder"`
}

func (h *AdminProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.uc.Create(r.Context(), usecase.CreateProductInput{
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Rating:      req.Rating,
		Features:    req.Features,
		InStock:     req.InStock,
		PreOrder:    req.PreOrder,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type productPatchRequest struct {
	Name        *string   `json:"name"`
	PriceCents  *int64    `json:"priceCents"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Category    *string   `json:"category"`
	Rating      *float64  `json:"rating"`
	Features    *[]string `json:"features"`
	InStock     *bool     `json:"inStock"`
	PreOrder    *bool     `json:"preOrder"`
}

func (h *AdminProductHandler) handlePatch(w http.ResponseWriter, r *http.Request, id string) {
	var req productPatchRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.uc.Update(r.Context(), id, productdom.Patch{
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Rating:      req.Rating,
		Features:    req.Features,
		InStock:     req.InStock,
		PreOrder:    req.PreOrder,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminProductHandler) handleImage(w http.ResponseWriter, r *http.Request, id string) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "image too large or unreadable")
		return
	}

	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		filename = "image"
	}

	p, err := h.uc.UploadImage(r.Context(), id, filename, r.Header.Get("Content-Type"), data)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
