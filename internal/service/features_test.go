package service

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"github.com/utafrali/cartsim/internal/catalog"
	"github.com/utafrali/cartsim/internal/event"
	"github.com/utafrali/cartsim/internal/metrics"
	"github.com/utafrali/cartsim/internal/repository/memory"
	apperrors "github.com/utafrali/cartsim/pkg/errors"
	"github.com/utafrali/cartsim/pkg/logger"
)

type shoppingTestContext struct {
	shop    *Shop
	session *Session
	removed bool
	err     error
}

func (c *shoppingTestContext) reset() {
	log := logger.Discard()
	c.shop = NewShop(
		catalog.Default(),
		memory.NewOrderRepository(),
		event.NewProducer(event.NewJournal(), log),
		metrics.New(),
		log,
		DefaultMaxQuantity,
	)
	c.session = nil
	c.removed = false
	c.err = nil
}

func (c *shoppingTestContext) aUserRegisteredAsWithEmail(ctx context.Context, name, email string) error {
	_, err := c.shop.Register(ctx, name, email)
	return err
}

func (c *shoppingTestContext) theUserLogsInWithEmail(ctx context.Context, email string) error {
	c.session, c.err = c.shop.Login(ctx, email)
	return nil
}

func (c *shoppingTestContext) theUserAddsOf(ctx context.Context, quantity int, productID string) error {
	if c.session == nil {
		return fmt.Errorf("no active session")
	}
	_, c.err = c.session.AddToCart(ctx, productID, quantity)
	return nil
}

func (c *shoppingTestContext) theUserRemovesOf(ctx context.Context, quantity int, productID string) error {
	if c.session == nil {
		return fmt.Errorf("no active session")
	}
	c.removed, c.err = c.session.RemoveFromCart(ctx, productID, quantity)
	return c.err
}

func (c *shoppingTestContext) theUserChecksOut(ctx context.Context) error {
	if c.session == nil {
		return fmt.Errorf("no active session")
	}
	_, c.err = c.session.Checkout(ctx)
	return nil
}

func (c *shoppingTestContext) theUserLogsOut(ctx context.Context) error {
	if c.session == nil {
		return fmt.Errorf("no active session")
	}
	return c.session.Logout(ctx)
}

func (c *shoppingTestContext) theCartTotalIs(want string) error {
	cart := c.session.Cart()
	if got := cart.Total().String(); got != want {
		return fmt.Errorf("expected cart total %s, got %s", want, got)
	}
	if cart.Total() != cart.Recompute() {
		return fmt.Errorf("running total %s differs from recomputed %s", cart.Total(), cart.Recompute())
	}
	return nil
}

func (c *shoppingTestContext) theCartHasOf(quantity int, productID string) error {
	cart := c.session.Cart()
	item, ok := cart.Item(productID)
	if !ok {
		return fmt.Errorf("expected %s in cart", productID)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d of %s, got %d", quantity, productID, item.Quantity)
	}
	return nil
}

func (c *shoppingTestContext) theCartIsEmpty() error {
	cart := c.session.Cart()
	if !cart.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", cart.Len())
	}
	return nil
}

func (c *shoppingTestContext) theProductWasNotInTheCart() error {
	if c.removed {
		return fmt.Errorf("expected remove to report a missing product")
	}
	return nil
}

func (c *shoppingTestContext) theRequestFailsWithCode(code string) error {
	if c.err == nil {
		return fmt.Errorf("expected failure with code %s, got success", code)
	}
	if got := apperrors.CodeOf(c.err); got != code {
		return fmt.Errorf("expected code %s, got %s (%v)", code, got, c.err)
	}
	return nil
}

func (c *shoppingTestContext) theUserIsLoggedIn() error {
	if c.err != nil {
		return fmt.Errorf("expected login to succeed: %w", c.err)
	}
	user, ok := c.shop.User()
	if !ok || !user.LoggedIn {
		return fmt.Errorf("expected user to be logged in")
	}
	return nil
}

func (c *shoppingTestContext) orderIsWithTotal(ctx context.Context, id int, label, total string) error {
	history, err := c.shop.OrderHistory(ctx)
	if err != nil {
		return err
	}
	for i := range history {
		o := &history[i]
		if o.ID != id {
			continue
		}
		if got := o.Status.Label(); got != label {
			return fmt.Errorf("expected order %d status %q, got %q", id, label, got)
		}
		if got := o.Total().String(); got != total {
			return fmt.Errorf("expected order %d total %s, got %s", id, total, got)
		}
		return nil
	}
	return fmt.Errorf("order %d not found", id)
}

func (c *shoppingTestContext) theOrderHistoryHasOrders(ctx context.Context, n string) error {
	want, err := strconv.Atoi(n)
	if err != nil {
		return err
	}
	history, err := c.shop.OrderHistory(ctx)
	if err != nil {
		return err
	}
	if len(history) != want {
		return fmt.Errorf("expected %d orders, got %d", want, len(history))
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &shoppingTestContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.Step(`^a user registered as "([^"]*)" with email "([^"]*)"$`, tc.aUserRegisteredAsWithEmail)
	sc.Step(`^the user logs in with email "([^"]*)"$`, tc.theUserLogsInWithEmail)
	sc.Step(`^the user adds (\d+) of "([^"]*)"$`, tc.theUserAddsOf)
	sc.Step(`^the user removes (\d+) of "([^"]*)"$`, tc.theUserRemovesOf)
	sc.Step(`^the user checks out$`, tc.theUserChecksOut)
	sc.Step(`^the user logs out$`, tc.theUserLogsOut)

	sc.Step(`^the cart total is "([^"]*)"$`, tc.theCartTotalIs)
	sc.Step(`^the cart has (\d+) of "([^"]*)"$`, tc.theCartHasOf)
	sc.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	sc.Step(`^the product was not in the cart$`, tc.theProductWasNotInTheCart)
	sc.Step(`^the request fails with code "([^"]*)"$`, tc.theRequestFailsWithCode)
	sc.Step(`^the user is logged in$`, tc.theUserIsLoggedIn)
	sc.Step(`^order (\d+) is "([^"]*)" with total "([^"]*)"$`, tc.orderIsWithTotal)
	sc.Step(`^the order history has (\d+) orders?$`, tc.theOrderHistoryHasOrders)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
