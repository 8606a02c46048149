package port

import (
	"context"
	"time"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
)

// CacheRepository is the best-effort listing cache. It is never a source
// of truth; any caller may flush it without coordination.
type CacheRepository interface {
	// GetProductPage returns the cached snapshot for key, or nil on a miss.
	GetProductPage(ctx context.Context, key string) (*domain.ProductPage, error)

	// SetProductPage stores a snapshot under key with the given expiration.
	SetProductPage(ctx context.Context, key string, page *domain.ProductPage, ttl time.Duration) error

	// FlushProducts drops every cached product listing.
	FlushProducts(ctx context.Context) error
}
