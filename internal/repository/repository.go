package repository

import (
	"context"

	"github.com/utafrali/cartsim/internal/domain"
)

// OrderRepository defines the interface for order history operations.
// History is append-only: orders are never deleted.
type OrderRepository interface {
	// Append stores a new order. Ids must be unique.
	Append(ctx context.Context, order *domain.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id int) (*domain.Order, error)

	// List returns every order in the order it was appended.
	List(ctx context.Context) ([]*domain.Order, error)

	// Update replaces the stored status of an existing order.
	Update(ctx context.Context, order *domain.Order) error
}
