package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/utafrali/cartsim/internal/domain"
	apperrors "github.com/utafrali/cartsim/pkg/errors"
	"github.com/utafrali/cartsim/pkg/logger"
	"github.com/utafrali/cartsim/pkg/validator"
)

// Session is one login. It owns the cart, which is discarded on logout.
type Session struct {
	id     string
	shop   *Shop
	cart   *domain.Cart
	active bool
}

func newSession(shop *Shop) *Session {
	return &Session{
		id:     uuid.New().String(),
		shop:   shop,
		cart:   domain.NewCart(),
		active: true,
	}
}

// ID returns the session id carried in logs and events.
func (s *Session) ID() string {
	return s.id
}

// Active reports whether the session has not been logged out.
func (s *Session) Active() bool {
	return s.active
}

// Products returns the catalog in display order.
func (s *Session) Products() []domain.Product {
	return s.shop.catalog.List()
}

// FindProduct looks up a catalog product by exact id.
func (s *Session) FindProduct(productID string) (domain.Product, bool) {
	return s.shop.catalog.FindByID(productID)
}

// Cart returns a snapshot of the session cart.
func (s *Session) Cart() domain.Cart {
	return s.cart.Snapshot()
}

// AddToCart adds quantity units of a catalog product, merging with an
// existing line.
func (s *Session) AddToCart(ctx context.Context, productID string, quantity int) (domain.Product, error) {
	ctx = s.context(ctx)
	ctx, span := s.shop.tracer.Start(ctx, "Session.AddToCart")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", quantity),
	)

	if err := s.ensureActive(); err != nil {
		return domain.Product{}, err
	}
	if err := s.checkQuantity(quantity); err != nil {
		return domain.Product{}, err
	}

	product, ok := s.shop.catalog.FindByID(productID)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", productID)
	}

	s.cart.AddItem(product, quantity)
	s.shop.metrics.ItemsAdded.WithLabelValues(product.ID).Add(float64(quantity))
	s.publishCartUpdated(ctx)

	s.shop.log(ctx).InfoContext(ctx, "item added to cart",
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
		slog.String("cart_total", s.cart.Total().String()),
	)

	return product, nil
}

// RemoveFromCart removes up to quantity units of a product. It reports
// false, with no change, when the product is not in the cart.
func (s *Session) RemoveFromCart(ctx context.Context, productID string, quantity int) (bool, error) {
	ctx = s.context(ctx)
	ctx, span := s.shop.tracer.Start(ctx, "Session.RemoveFromCart")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", quantity),
	)

	if err := s.ensureActive(); err != nil {
		return false, err
	}
	if err := s.checkQuantity(quantity); err != nil {
		return false, err
	}

	line, ok := s.cart.Item(productID)
	if !ok || !s.cart.RemoveItem(productID, quantity) {
		s.shop.metrics.RemoveMisses.Inc()
		s.shop.log(ctx).DebugContext(ctx, "product not in cart", slog.String("product_id", productID))
		return false, nil
	}

	s.shop.metrics.ItemsRemoved.WithLabelValues(productID).Add(float64(min(quantity, line.Quantity)))
	s.publishCartUpdated(ctx)

	s.shop.log(ctx).InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
		slog.String("cart_total", s.cart.Total().String()),
	)

	return true, nil
}

// Checkout turns the whole cart into a placed order and starts a new,
// empty cart. The order keeps its own copy of the lines.
func (s *Session) Checkout(ctx context.Context) (*domain.Order, error) {
	ctx = s.context(ctx)
	ctx, span := s.shop.tracer.Start(ctx, "Session.Checkout")
	defer span.End()

	if err := s.ensureActive(); err != nil {
		return nil, err
	}
	if s.cart.IsEmpty() {
		s.shop.metrics.CheckoutRejected.Inc()
		return nil, apperrors.New(apperrors.CodeInvalidInput, "cart is empty", ErrEmptyCart)
	}

	order := domain.NewOrder(s.shop.nextOrderID, s.cart)
	if err := order.Place(); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if err := s.shop.orders.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}
	s.shop.nextOrderID++
	span.SetAttributes(attribute.Int("order.id", order.ID))

	s.shop.metrics.OrdersPlaced.Inc()
	s.shop.metrics.OrderRevenue.Add(order.Total().Decimal().InexactFloat64())
	s.shop.metrics.OrderItems.Observe(float64(s.cart.ItemCount()))

	if err := s.shop.producer.PublishOrderPlaced(ctx, s.id, order); err != nil {
		s.shop.log(ctx).ErrorContext(ctx, "failed to publish order.placed event",
			slog.Int("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.shop.log(ctx).InfoContext(ctx, "order placed",
		slog.Int("order_id", order.ID),
		slog.String("total", order.Total().String()),
		slog.Int("lines", s.cart.Len()),
	)

	s.cart = domain.NewCart()
	return order.Clone(), nil
}

// Logout ends the session and discards its cart. It clears the account's login
// flag only while this is the current session; logging out twice is a
// no-op.
func (s *Session) Logout(ctx context.Context) error {
	ctx = s.context(ctx)
	ctx, span := s.shop.tracer.Start(ctx, "Session.Logout")
	defer span.End()

	// A session that was already closed, by an earlier logout or by a newer
	// login or registration, must not log out the current one.
	if s.shop.current != s {
		s.close()
		return nil
	}
	s.shop.current = nil
	s.close()

	if s.shop.user == nil {
		return nil
	}
	s.shop.user.Logout()

	if err := s.shop.producer.PublishUserLoggedOut(ctx, s.id, s.shop.user); err != nil {
		s.shop.log(ctx).ErrorContext(ctx, "failed to publish user.logged_out event",
			slog.String("error", err.Error()),
		)
	}

	s.shop.log(ctx).InfoContext(ctx, "user logged out")
	return nil
}

func (s *Session) context(ctx context.Context) context.Context {
	ctx = logger.WithSessionID(ctx, s.id)
	if id := s.shop.userID(); id != "" {
		ctx = logger.WithUserID(ctx, id)
	}
	return ctx
}

func (s *Session) ensureActive() error {
	if !s.active {
		return apperrors.New(apperrors.CodeUnauthorized, "session is logged out", ErrSessionClosed)
	}
	return nil
}

func (s *Session) checkQuantity(quantity int) error {
	tag := fmt.Sprintf("gte=1,lte=%d", s.shop.maxQuantity)
	if err := validator.Var(quantity, tag); err != nil {
		return apperrors.InvalidInput("quantity " + err.Error())
	}
	return nil
}

func (s *Session) publishCartUpdated(ctx context.Context) {
	if err := s.shop.producer.PublishCartUpdated(ctx, s.id, s.cart); err != nil {
		s.shop.log(ctx).ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Session) close() {
	s.active = false
	s.cart = domain.NewCart()
}
