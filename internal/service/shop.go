// Package service holds the shopping workflow: the Shop owns process-wide
// state (catalog, account, order history) and each successful login yields
// a Session that owns a cart.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/cartsim/internal/catalog"
	"github.com/utafrali/cartsim/internal/domain"
	"github.com/utafrali/cartsim/internal/metrics"
	"github.com/utafrali/cartsim/internal/repository"
	apperrors "github.com/utafrali/cartsim/pkg/errors"
	"github.com/utafrali/cartsim/pkg/logger"
	"github.com/utafrali/cartsim/pkg/tracing"
	"github.com/utafrali/cartsim/pkg/validator"
)

// DefaultMaxQuantity bounds a single add or remove request.
const DefaultMaxQuantity = 100

// Sentinel errors for workflow outcomes. They are returned wrapped in an
// *apperrors.AppError; match them with errors.Is.
var (
	ErrNotRegistered = errors.New("no user registered")
	ErrEmailMismatch = errors.New("email does not match")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrSessionClosed = errors.New("session is logged out")
)

// EventProducer publishes domain events. Failures are logged by the caller
// and never abort the operation that raised the event.
type EventProducer interface {
	PublishCartUpdated(ctx context.Context, sessionID string, cart *domain.Cart) error
	PublishOrderPlaced(ctx context.Context, sessionID string, order *domain.Order) error
	PublishOrderCancelled(ctx context.Context, order *domain.Order) error
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishUserLoggedIn(ctx context.Context, sessionID string, user *domain.User) error
	PublishUserLoggedOut(ctx context.Context, sessionID string, user *domain.User) error
}

// Shop is the process state of one simulator run. It is not safe for
// concurrent use.
type Shop struct {
	catalog     *catalog.Catalog
	orders      repository.OrderRepository
	producer    EventProducer
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	maxQuantity int

	user        *domain.User
	current     *Session
	nextOrderID int
}

// NewShop creates a shop with no registered user. A maxQuantity below 1
// falls back to DefaultMaxQuantity.
func NewShop(
	cat *catalog.Catalog,
	orders repository.OrderRepository,
	producer EventProducer,
	m *metrics.Metrics,
	logger *slog.Logger,
	maxQuantity int,
) *Shop {
	if maxQuantity < 1 {
		maxQuantity = DefaultMaxQuantity
	}
	return &Shop{
		catalog:     cat,
		orders:      orders,
		producer:    producer,
		metrics:     m,
		logger:      logger,
		tracer:      tracing.Tracer("cartsim/service"),
		maxQuantity: maxQuantity,
		nextOrderID: 1,
	}
}

// Catalog returns the product catalog.
func (s *Shop) Catalog() *catalog.Catalog {
	return s.catalog
}

// MaxQuantity returns the largest quantity accepted by a single request.
func (s *Shop) MaxQuantity() int {
	return s.maxQuantity
}

// Registered reports whether a user has registered.
func (s *Shop) Registered() bool {
	return s.user != nil
}

// User returns a copy of the registered user.
func (s *Shop) User() (domain.User, bool) {
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// NextOrderID returns the id the next checkout will receive.
func (s *Shop) NextOrderID() int {
	return s.nextOrderID
}

// Register stores a new account, replacing any previous one. The new
// account starts logged out.
func (s *Shop) Register(ctx context.Context, name, email string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "Shop.Register")
	defer span.End()

	user := domain.NewUser(name, email)
	if err := validator.Validate(user); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	replaced := s.user != nil
	s.closeCurrent(ctx, "account replaced")
	s.user = user
	s.metrics.Registrations.Inc()

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("error", err.Error()),
		)
	}

	s.log(ctx).InfoContext(ctx, "user registered",
		slog.String("email", email),
		slog.Bool("replaced", replaced),
	)

	cp := *user
	return &cp, nil
}

// Login checks email against the registered account and opens a session
// with an empty cart. Failures leave the account untouched.
func (s *Shop) Login(ctx context.Context, email string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "Shop.Login")
	defer span.End()

	if s.user == nil {
		s.metrics.LoginAttempts.WithLabelValues(metrics.LoginNotRegistered).Inc()
		return nil, apperrors.New(apperrors.CodeUnauthorized, "no user registered", ErrNotRegistered)
	}
	if !s.user.Login(email) {
		s.metrics.LoginAttempts.WithLabelValues(metrics.LoginEmailMismatch).Inc()
		s.log(ctx).WarnContext(ctx, "login rejected", slog.String("email", email))
		return nil, apperrors.New(apperrors.CodeUnauthorized, "email does not match the registered account", ErrEmailMismatch)
	}
	s.metrics.LoginAttempts.WithLabelValues(metrics.LoginSuccess).Inc()

	s.closeCurrent(ctx, "new login")
	sess := newSession(s)
	s.current = sess
	ctx = sess.context(ctx)
	span.SetAttributes(attribute.String("session.id", sess.id))

	if err := s.producer.PublishUserLoggedIn(ctx, sess.id, s.user); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish user.logged_in event",
			slog.String("error", err.Error()),
		)
	}

	s.log(ctx).InfoContext(ctx, "user logged in")

	return sess, nil
}

// OrderHistory returns copies of every order in placement order.
func (s *Shop) OrderHistory(ctx context.Context) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Shop.OrderHistory")
	defer span.End()

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, *o.Clone())
	}
	return out, nil
}

// CancelOrder moves a pending or placed order to cancelled.
func (s *Shop) CancelOrder(ctx context.Context, id int) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Shop.CancelOrder")
	defer span.End()
	span.SetAttributes(attribute.Int("order.id", id))

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}
	s.metrics.OrdersCancelled.Inc()

	if err := s.producer.PublishOrderCancelled(ctx, order); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to publish order.cancelled event",
			slog.Int("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.log(ctx).InfoContext(ctx, "order cancelled", slog.Int("order_id", id))

	return order, nil
}

func (s *Shop) log(ctx context.Context) *slog.Logger {
	return logger.WithContext(ctx, s.logger)
}

func (s *Shop) userID() string {
	if s.user == nil {
		return ""
	}
	return strconv.Itoa(s.user.ID)
}

// closeCurrent ends the open session, if any, without touching the
// account's login flag. Only one session is live at a time.
func (s *Shop) closeCurrent(ctx context.Context, reason string) {
	if s.current == nil {
		return
	}
	prev := s.current
	s.current = nil
	prev.close()

	s.log(ctx).InfoContext(ctx, "session closed",
		slog.String("session_id", prev.id),
		slog.String("reason", reason),
	)
}
