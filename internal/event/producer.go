package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/cartsim/internal/domain"
	"github.com/utafrali/cartsim/pkg/events"
)

// Topic constants for simulator domain events.
const (
	TopicCartUpdated    = "cartsim.cart.updated"
	TopicOrderPlaced    = "cartsim.order.placed"
	TopicOrderCancelled = "cartsim.order.cancelled"
	TopicUserRegistered = "cartsim.user.registered"
	TopicUserLoggedIn   = "cartsim.user.logged_in"
	TopicUserLoggedOut  = "cartsim.user.logged_out"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
	AggregateTypeUser  = "user"
)

// SourceCartsim identifies events originating from this program.
const SourceCartsim = "cartsim"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	Items       []LineItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
}

// LineItemData is the item payload within cart and order events.
type LineItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderData is the payload for order events.
type OrderData struct {
	OrderID     int            `json:"order_id"`
	Status      string         `json:"status"`
	Items       []LineItemData `json:"items"`
	TotalAmount int64          `json:"total_amount"`
}

// UserData is the payload for user events.
type UserData struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Producer builds domain events and hands them to a Publisher.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		pub:    pub,
		logger: logger,
	}
}

func lineItems(items []domain.LineItem) []LineItemData {
	out := make([]LineItemData, len(items))
	for i, item := range items {
		out[i] = LineItemData{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     int64(item.Price),
			Quantity:  item.Quantity,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event for the session's cart.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data := CartUpdatedData{
		Items:       lineItems(cart.Items()),
		ItemCount:   cart.ItemCount(),
		TotalAmount: int64(cart.Total()),
	}
	return p.publish(ctx, TopicCartUpdated, sessionID, AggregateTypeCart, sessionID, data)
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, sessionID string, order *domain.Order) error {
	return p.publish(ctx, TopicOrderPlaced, strconv.Itoa(order.ID), AggregateTypeOrder, sessionID, orderData(order))
}

// PublishOrderCancelled publishes an order.cancelled event.
func (p *Producer) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, TopicOrderCancelled, strconv.Itoa(order.ID), AggregateTypeOrder, "", orderData(order))
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	return p.publish(ctx, TopicUserRegistered, strconv.Itoa(user.ID), AggregateTypeUser, "", userData(user))
}

// PublishUserLoggedIn publishes a user.logged_in event.
func (p *Producer) PublishUserLoggedIn(ctx context.Context, sessionID string, user *domain.User) error {
	return p.publish(ctx, TopicUserLoggedIn, strconv.Itoa(user.ID), AggregateTypeUser, sessionID, userData(user))
}

// PublishUserLoggedOut publishes a user.logged_out event.
func (p *Producer) PublishUserLoggedOut(ctx context.Context, sessionID string, user *domain.User) error {
	return p.publish(ctx, TopicUserLoggedOut, strconv.Itoa(user.ID), AggregateTypeUser, sessionID, userData(user))
}

func orderData(order *domain.Order) OrderData {
	return OrderData{
		OrderID:     order.ID,
		Status:      string(order.Status),
		Items:       lineItems(order.Items()),
		TotalAmount: int64(order.Total()),
	}
}

func userData(user *domain.User) UserData {
	return UserData{UserID: user.ID, Name: user.Name, Email: user.Email}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType, sessionID string, data any) error {
	ev, err := events.New(topic,
		events.Aggregate{Type: aggregateType, ID: aggregateID},
		SourceCartsim,
		data,
		events.WithSession(sessionID),
		events.WithTrace(ctx),
	)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.pub.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	if p.logger.Enabled(ctx, slog.LevelDebug) {
		envelope, err := ev.Encode()
		if err != nil {
			p.logger.WarnContext(ctx, "failed to encode event for logging",
				slog.String("topic", topic),
				slog.String("error", err.Error()),
			)
			return nil
		}
		p.logger.DebugContext(ctx, "published event",
			slog.String("topic", topic),
			slog.String("event_id", ev.ID),
			slog.String("envelope", string(envelope)),
		)
	}

	return nil
}
