package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
	"github.com/Bateyjosue/e-commerce-platform-backend/internal/port"
)

const productCacheTTL = 10 * time.Minute

// CatalogService serves product listings cache-aside and owns the catalog
// mutations, each of which flushes the listing cache before returning.
type CatalogService struct {
	db    port.DatabaseRepository
	cache port.CacheRepository
}

func NewCatalogService(db port.DatabaseRepository, cache port.CacheRepository) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

// ListProducts returns one page of matching products plus the total match
// count. The second return value reports whether the page was served from
// the cache. A cache outage never fails the read path.
func (s *CatalogService) ListProducts(ctx context.Context, query domain.ProductQuery) (*domain.ProductPage, bool, error) {
	q := query.WithDefaults()
	key := q.CacheKey()

	cached, err := s.cache.GetProductPage(ctx, key)
	if err != nil {
		log.Printf("product cache read failed, falling back to database: %v", err)
	}
	if cached != nil {
		return cached, true, nil
	}

	products, err := s.db.SearchProducts(ctx, q)
	if err != nil {
		return nil, false, fmt.Errorf("search products: %w", err)
	}
	total, err := s.db.CountProducts(ctx, q.Search)
	if err != nil {
		return nil, false, fmt.Errorf("count products: %w", err)
	}

	page := &domain.ProductPage{
		Products:      products,
		Page:          q.Page,
		Count:         len(products),
		TotalProducts: total,
	}

	if err := s.cache.SetProductPage(ctx, key, page, productCacheTTL); err != nil {
		log.Printf("product cache write failed: %v", err)
	}

	return page, false, nil
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.db.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Product with id %s not found", id)
	}
	return product, nil
}

// CreateProduct validates and inserts a new catalog entry owned by userID.
func (s *CatalogService) CreateProduct(ctx context.Context, userID string, product domain.Product) (*domain.Product, error) {
	if userID == "" {
		return nil, domain.Errorf(domain.ErrBadRequest, "missing user identity")
	}

	now := time.Now()
	product.ID = uuid.New().String()
	product.UserID = userID
	product.UpdatedBy = userID
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Image == "" {
		product.Image = domain.DefaultProductImage
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidate(ctx)
	return &product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id, userID string, update domain.ProductUpdate) (*domain.Product, error) {
	if userID == "" {
		return nil, domain.Errorf(domain.ErrBadRequest, "missing user identity")
	}

	product, err := s.db.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Product with id %s not found", id)
	}

	update.Apply(product)
	product.UpdatedBy = userID
	product.UpdatedAt = time.Now()

	if err := product.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.db.UpdateProduct(ctx, *product)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "Product with id %s not found", id)
	}

	s.invalidate(ctx)
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ok, err := s.db.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "Product with id %s not found", id)
	}

	s.invalidate(ctx)
	return nil
}

// invalidate drops every cached listing. A flush failure is recovered
// locally; staleness is then bounded by the entry TTL.
func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.FlushProducts(ctx); err != nil {
		log.Printf("product cache flush failed: %v", err)
	}
}
