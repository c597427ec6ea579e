// Package memory keeps order history in process memory for the lifetime of
// the run.
package memory

import (
	"context"
	"strconv"

	"github.com/utafrali/cartsim/internal/domain"
	apperrors "github.com/utafrali/cartsim/pkg/errors"
)

// OrderRepository is an in-memory, append-only order history. It stores
// clones, so callers cannot reach stored orders through their pointers.
type OrderRepository struct {
	orders []*domain.Order
	index  map[int]int
}

// NewOrderRepository creates an empty order history.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{index: make(map[int]int)}
}

// Append stores a copy of order.
func (r *OrderRepository) Append(_ context.Context, order *domain.Order) error {
	if _, ok := r.index[order.ID]; ok {
		return apperrors.AlreadyExists("order", "id", strconv.Itoa(order.ID))
	}
	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, order.Clone())
	return nil
}

// Get returns a copy of the order with the given id.
func (r *OrderRepository) Get(_ context.Context, id int) (*domain.Order, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("order", strconv.Itoa(id))
	}
	return r.orders[i].Clone(), nil
}

// List returns copies of all orders in append order.
func (r *OrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

// Update overwrites the status of a stored order. The cart snapshot is
// never replaced.
func (r *OrderRepository) Update(_ context.Context, order *domain.Order) error {
	i, ok := r.index[order.ID]
	if !ok {
		return apperrors.NotFound("order", strconv.Itoa(order.ID))
	}
	r.orders[i].Status = order.Status
	return nil
}

// Len returns the number of stored orders.
func (r *OrderRepository) Len() int {
	return len(r.orders)
}
