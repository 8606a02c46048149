package domain

import (
	"fmt"
	"strings"
	"time"
)

const DefaultProductImage = "/uploads/defaultImage.jpeg"

// Categories a product may belong to.
const (
	CategoryOffice      = "office"
	CategoryKitchen     = "kitchen"
	CategoryBedroom     = "bedroom"
	CategoryElectronics = "Electronics"
)

var productCategories = map[string]bool{
	CategoryOffice:      true,
	CategoryKitchen:     true,
	CategoryBedroom:     true,
	CategoryElectronics: true,
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	UserID      string    `json:"user"`
	UpdatedBy   string    `json:"updatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the catalog constraints. Stock and price bounds matter
// transactionally; the rest mirrors the catalog schema.
func (p Product) Validate() error {
	if n := len(strings.TrimSpace(p.Name)); n < 3 || n > 100 {
		return Errorf(ErrBadRequest, "product name must be between 3 and 100 characters")
	}
	if p.Price < 0 {
		return Errorf(ErrBadRequest, "product price must be a positive number")
	}
	if n := len(p.Description); n < 10 || n > 1000 {
		return Errorf(ErrBadRequest, "product description must be between 10 and 1000 characters")
	}
	if !productCategories[p.Category] {
		return Errorf(ErrBadRequest, "%s is not a supported category", p.Category)
	}
	if p.Stock < 0 {
		return Errorf(ErrBadRequest, "product stock cannot be negative")
	}
	return nil
}

// ProductUpdate is a partial catalog update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
}

// Apply copies the non-nil fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}

// ProductQuery are the listing parameters. The zero value is valid; call
// WithDefaults before deriving a cache key so the key reflects the
// parameters actually applied.
type ProductQuery struct {
	Page   int
	Limit  int
	Search string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

func (q ProductQuery) WithDefaults() ProductQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// CacheKey is a deterministic encoding of the applied query parameters.
func (q ProductQuery) CacheKey() string {
	return fmt.Sprintf("products:page=%d:limit=%d:search=%s", q.Page, q.Limit, strings.ToLower(q.Search))
}

// ProductPage is the listing snapshot stored in the cache.
type ProductPage struct {
	Products      []Product `json:"products"`
	Page          int       `json:"page"`
	Count         int       `json:"count"`
	TotalProducts int       `json:"totalProducts"`
}
