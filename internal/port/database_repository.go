package port

import (
	"context"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
)

// UnitOfWork scopes a group of storage operations that commit or abort as
// a single indivisible step. Rollback after a successful Commit is a
// no-op, so callers can defer it unconditionally.
type UnitOfWork interface {
	Commit() error
	Rollback() error
}

type DatabaseRepository interface {
	// Begin opens a unit of work for order placement.
	Begin(ctx context.Context) (UnitOfWork, error)

	// GetProductForUpdate reads a product inside the unit of work.
	// Returns nil when the product does not exist.
	GetProductForUpdate(ctx context.Context, uow UnitOfWork, id string) (*domain.Product, error)

	// DecrementStock conditionally decrements stock inside the unit of
	// work; returns false when the remaining stock cannot cover quantity.
	DecrementStock(ctx context.Context, uow UnitOfWork, productID string, quantity int) (bool, error)

	// CreateOrder persists a new order inside the unit of work.
	CreateOrder(ctx context.Context, uow UnitOfWork, order domain.Order) error

	// OrdersByUser lists every order owned by the user, insertion order.
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// CreateProduct inserts a new catalog entry.
	CreateProduct(ctx context.Context, product domain.Product) error

	// GetProduct reads a product outside any unit of work; nil when absent.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// UpdateProduct replaces a catalog entry; returns false when absent.
	UpdateProduct(ctx context.Context, product domain.Product) (bool, error)

	// DeleteProduct removes a catalog entry; returns false when absent.
	DeleteProduct(ctx context.Context, id string) (bool, error)

	// SearchProducts returns the page of products matching the query,
	// most recently created first.
	SearchProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error)

	// CountProducts counts all matches for the search filter, ignoring
	// pagination.
	CountProducts(ctx context.Context, search string) (int, error)
}
