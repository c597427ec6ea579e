package domain

import (
	"strconv"
	"time"

	apperrors "github.com/utafrali/cartsim/pkg/errors"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order status constants.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Label returns the text shown to the user for the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusPlaced:
		return "Order Placed"
	case OrderStatusCancelled:
		return "Order Cancelled"
	default:
		return string(s)
	}
}

// ValidStatuses returns all valid order statuses.
func ValidStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPlaced,
		OrderStatusCancelled,
	}
}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status OrderStatus) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// AllowedTransitions defines which status transitions are valid. Nothing
// leads back to pending, and cancelled is terminal.
func AllowedTransitions() map[OrderStatus][]OrderStatus {
	return map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusPlaced, OrderStatusCancelled},
		OrderStatusPlaced:    {OrderStatusCancelled},
		OrderStatusCancelled: {},
	}
}

// Order is a checked-out cart. Its cart is a private snapshot taken at
// construction; only Status changes afterwards.
type Order struct {
	ID        int         `json:"id"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	cart      Cart
}

// NewOrder creates a pending order holding a deep copy of cart. The id is
// assigned by the caller, which owns the order counter.
func NewOrder(id int, cart *Cart) *Order {
	return &Order{
		ID:        id,
		Status:    OrderStatusPending,
		CreatedAt: time.Now().UTC(),
		cart:      cart.Snapshot(),
	}
}

// CanTransitionTo checks if the order can transition to the target status.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	allowed, ok := AllowedTransitions()[o.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// Place moves a pending order to placed.
func (o *Order) Place() error {
	return o.transition(OrderStatusPlaced)
}

// Cancel moves a pending or placed order to cancelled.
func (o *Order) Cancel() error {
	return o.transition(OrderStatusCancelled)
}

func (o *Order) transition(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return apperrors.InvalidTransition("order "+strconv.Itoa(o.ID), string(o.Status), string(target))
	}
	o.Status = target
	return nil
}

// Total returns the snapshot total.
func (o *Order) Total() Money {
	return o.cart.Total()
}

// Items returns a copy of the ordered lines.
func (o *Order) Items() []LineItem {
	return o.cart.Items()
}

// Cart returns a copy of the snapshot.
func (o *Order) Cart() Cart {
	return o.cart.Snapshot()
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	cp := *o
	cp.cart = o.cart.Snapshot()
	return &cp
}
