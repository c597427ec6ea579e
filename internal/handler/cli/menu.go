package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/utafrali/cartsim/internal/service"
	apperrors "github.com/utafrali/cartsim/pkg/errors"
)

// Menu runs the top-level and shopping menus against a Shop.
type Menu struct {
	shop   *service.Shop
	prompt *Prompter
	render *Renderer
	out    io.Writer
	logger *slog.Logger
}

// NewMenu creates a menu reading answers from in and writing to out.
func NewMenu(shop *service.Shop, in io.Reader, out io.Writer, currency string, logger *slog.Logger) *Menu {
	return &Menu{
		shop:   shop,
		prompt: NewPrompter(in, out),
		render: NewRenderer(out, currency),
		out:    out,
		logger: logger,
	}
}

// Run shows the main menu until Exit is chosen, the input ends, or ctx is
// cancelled. End of input behaves like Exit.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		m.print("\nWelcome to my Shopping Cart\n")
		m.print("1. Register\n")
		m.print("2. Login\n")
		m.print("3. View Order History\n")
		m.print("4. Exit\n")

		choice, err := m.prompt.Number("Enter your choice: ", 1, 4)
		if err != nil {
			return m.endOfInput(err)
		}

		switch choice {
		case 1:
			err = m.register(ctx)
		case 2:
			err = m.login(ctx)
		case 3:
			err = m.orderHistory(ctx)
		case 4:
			m.print("Exiting the application. Goodbye!\n")
			return nil
		}
		if err != nil {
			return m.endOfInput(err)
		}
	}
}

func (m *Menu) register(ctx context.Context) error {
	m.print("\n--- User Registration ---\n")
	name, err := m.prompt.Text("Enter your name: ")
	if err != nil {
		return err
	}
	email, err := m.prompt.Text("Enter your email: ")
	if err != nil {
		return err
	}

	if _, err := m.shop.Register(ctx, name, email); err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			m.printf("Registration failed: %s\n", apperrors.UserMessage(err))
			return nil
		}
		return fmt.Errorf("register: %w", err)
	}
	m.print("Registration successful!\n")
	return nil
}

func (m *Menu) login(ctx context.Context) error {
	if !m.shop.Registered() {
		m.print("No registered user found. Please register first.\n")
		return nil
	}

	m.print("\n--- User Login ---\n")
	email, err := m.prompt.Text("Enter your email to login: ")
	if err != nil {
		return err
	}

	sess, err := m.shop.Login(ctx, email)
	switch {
	case errors.Is(err, service.ErrEmailMismatch):
		m.print("Incorrect email. Login failed.\n")
		return nil
	case errors.Is(err, service.ErrNotRegistered):
		m.print("No registered user found. Please register first.\n")
		return nil
	case err != nil:
		return fmt.Errorf("login: %w", err)
	}
	m.print("Login successful!\n")

	if err := m.shopping(ctx, sess); err != nil {
		// The session is closed quietly when input ends mid-session.
		if logoutErr := sess.Logout(ctx); logoutErr != nil {
			m.logger.ErrorContext(ctx, "failed to close session", slog.String("error", logoutErr.Error()))
		}
		return err
	}
	return nil
}

func (m *Menu) shopping(ctx context.Context, sess *service.Session) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		m.print("\n--- Shopping Menu ---\n")
		m.print("1. View Products\n")
		m.print("2. Add Product to Cart\n")
		m.print("3. Remove Product from Cart\n")
		m.print("4. View Shopping Cart\n")
		m.print("5. Place Order\n")
		m.print("6. Logout\n")

		choice, err := m.prompt.Number("Enter your choice: ", 1, 6)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			m.render.Products(sess.Products())
		case 2:
			err = m.addToCart(ctx, sess)
		case 3:
			err = m.removeFromCart(ctx, sess)
		case 4:
			cart := sess.Cart()
			m.render.Cart(&cart, CartDetailed)
		case 5:
			err = m.placeOrder(ctx, sess)
		case 6:
			if err := sess.Logout(ctx); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			m.print("Logged out successfully.\n")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addToCart(ctx context.Context, sess *service.Session) error {
	productID, err := m.prompt.Line("Enter Product ID to add: ")
	if err != nil {
		return err
	}

	if _, ok := sess.FindProduct(productID); !ok {
		m.print("Product not found.\n")
		return nil
	}

	qty, err := m.prompt.Number("Enter quantity: ", 1, m.shop.MaxQuantity())
	if err != nil {
		return err
	}

	product, err := sess.AddToCart(ctx, productID, qty)
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	m.printf("%s added to cart (x%d).\n", product.Name, qty)
	return nil
}

func (m *Menu) removeFromCart(ctx context.Context, sess *service.Session) error {
	cart := sess.Cart()
	if cart.IsEmpty() {
		m.print("Cart is empty.\n")
		return nil
	}
	m.render.Cart(&cart, CartDetailed)

	productID, err := m.prompt.Line("Enter Product ID to remove: ")
	if err != nil {
		return err
	}
	qty, err := m.prompt.Number("Enter quantity to remove: ", 1, m.shop.MaxQuantity())
	if err != nil {
		return err
	}

	removed, err := sess.RemoveFromCart(ctx, productID, qty)
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	if removed {
		m.print("Product removed from the cart.\n")
	} else {
		m.print("Product not found in the cart.\n")
	}
	return nil
}

func (m *Menu) placeOrder(ctx context.Context, sess *service.Session) error {
	cart := sess.Cart()
	if cart.IsEmpty() {
		m.print("Cart is empty. Cannot place order.\n")
		return nil
	}

	yes, err := m.prompt.YesNo("Do you want to check out all the products (Y/N)? ")
	if err != nil {
		return err
	}
	if !yes {
		m.print("Returning to shopping menu.\n")
		return nil
	}

	order, err := sess.Checkout(ctx)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	m.print("Order placed successfully!\n")
	m.render.Order(order)
	return nil
}

func (m *Menu) orderHistory(ctx context.Context) error {
	orders, err := m.shop.OrderHistory(ctx)
	if err != nil {
		return fmt.Errorf("order history: %w", err)
	}
	m.render.History(orders)
	return nil
}

// endOfInput maps the end of stdin to a normal exit and a cancelled context
// to a quiet stop. Other errors are returned.
func (m *Menu) endOfInput(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		m.print("\nExiting the application. Goodbye!\n")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil
	default:
		return err
	}
}

func (m *Menu) print(s string) {
	fmt.Fprint(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
