package cli

import (
	"fmt"
	"io"

	"github.com/utafrali/cartsim/internal/domain"
)

// DefaultCurrency is the label printed in front of amounts.
const DefaultCurrency = "Php"

// CartDetail selects how much of a cart Render prints.
type CartDetail int

const (
	// CartDetailed prints the table and a total line.
	CartDetailed CartDetail = iota
	// CartSimple prints the table only. Order views use it.
	CartSimple
)

const cartRowFormat = "%-15s%-20s%-10s%-10s%-10s\n"

// Renderer writes catalog, cart and order views.
type Renderer struct {
	w        io.Writer
	currency string
}

// NewRenderer creates a renderer. An empty currency uses DefaultCurrency.
func NewRenderer(w io.Writer, currency string) *Renderer {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Renderer{w: w, currency: currency}
}

// Products lists the catalog, one product per line.
func (r *Renderer) Products(products []domain.Product) {
	fmt.Fprint(r.w, "\nAvailable Products:\n")
	for _, p := range products {
		fmt.Fprintf(r.w, "ID: %s, Name: %s, Price: %s %s\n", p.ID, p.Name, r.currency, p.Price)
	}
}

// Cart prints the cart as a fixed-width table.
func (r *Renderer) Cart(cart *domain.Cart, detail CartDetail) {
	if cart.IsEmpty() {
		fmt.Fprint(r.w, "Your cart is empty.\n")
		return
	}

	fmt.Fprintf(r.w, cartRowFormat, "Product ID", "Name", "Price", "Quantity", "Total")
	for _, item := range cart.Items() {
		fmt.Fprintf(r.w, cartRowFormat,
			item.ProductID,
			item.Name,
			item.Price.String(),
			fmt.Sprint(item.Quantity),
			item.LineTotal().String(),
		)
	}

	if detail == CartDetailed {
		fmt.Fprintf(r.w, "\nTotal Price: %s %s\n", r.currency, cart.Total())
	}
}

// Order prints an order's id, total and lines.
func (r *Renderer) Order(order *domain.Order) {
	cart := order.Cart()
	fmt.Fprintf(r.w, "Order ID: %d\n", order.ID)
	fmt.Fprintf(r.w, "Total Amount: %s %s\n", r.currency, order.Total())
	fmt.Fprint(r.w, "Order Details:\n")
	r.Cart(&cart, CartSimple)
}

// History prints every order followed by a blank line. Nothing is printed
// when there are no orders.
func (r *Renderer) History(orders []domain.Order) {
	if len(orders) == 0 {
		return
	}

	fmt.Fprint(r.w, "\nOrder History:\n")
	for i := range orders {
		r.Order(&orders[i])
		fmt.Fprint(r.w, "\n")
	}
	fmt.Fprint(r.w, "\n")
}
