package product

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("product: not found")
	ErrInvalidProduct = errors.New("product: invalid")
)

// Product is one catalog row (Postgres: products).
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"priceCents"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Rating      float64   `json:"rating"`
	Features    []string  `json:"features"`
	InStock     bool      `json:"inStock"`
	PreOrder    bool      `json:"preOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func New(id, name string, priceCents int64, description, imageURL, category string, rating float64, features []string, inStock, preOrder bool, now time.Time) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		PriceCents:  priceCents,
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		Category:    strings.TrimSpace(category),
		Rating:      rating,
		Features:    features,
		InStock:     inStock,
		PreOrder:    preOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProduct
	}
	if p.PriceCents < 0 {
		return ErrInvalidProduct
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidProduct
	}
	return nil
}

// Patch carries admin partial updates; nil means "leave unchanged".
type Patch struct {
	Name        *string
	PriceCents  *int64
	Description *string
	ImageURL    *string
	Category    *string
	Rating      *float64
	Features    *[]string
	InStock     *bool
	PreOrder    *bool
}

func (p Product) Apply(patch Patch, now time.Time) (Product, error) {
	out := p
	if patch.Name != nil {
		out.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.PriceCents != nil {
		out.PriceCents = *patch.PriceCents
	}
	if patch.Description != nil {
		out.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.ImageURL != nil {
		out.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Category != nil {
		out.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Rating != nil {
		out.Rating = *patch.Rating
	}
	if patch.Features != nil {
		out.Features = *patch.Features
	}
	if patch.InStock != nil {
		out.InStock = *patch.InStock
	}
	if patch.PreOrder != nil {
		out.PreOrder = *patch.PreOrder
	}
	out.UpdatedAt = now
	if err := out.validate(); err != nil {
		return Product{}, err
	}
	return out, nil
}
