package domain

import "slices"

// LineItem is one product line inside a cart. It carries a copy of the
// product so a placed order keeps the price it was bought at.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns the total price for this line item.
func (i LineItem) LineTotal() Money {
	return i.Price.Times(i.Quantity)
}

// Cart is an ordered collection of line items with a running total.
//
// The total is adjusted inside every mutating method, in the same call that
// changes the items, so Total always equals Recompute. The zero value is an
// empty cart ready to use.
type Cart struct {
	items []LineItem
	total Money
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds quantity units of p. Quantities merge into the existing line
// for p.ID; otherwise a new line is appended.
//
// quantity must be at least 1. The cart does not check this; callers
// validate input before it reaches here.
func (c *Cart) AddItem(p Product, quantity int) {
	if i := c.FindItemIndex(p.ID); i >= 0 {
		c.items[i].Quantity += quantity
		c.total += c.items[i].Price.Times(quantity)
		return
	}
	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
	})
	c.total += p.Price.Times(quantity)
}

// RemoveItem takes quantity units of productID out of the cart and reports
// whether the product was in the cart. Removing at least the current
// quantity deletes the line. Only the first matching line is touched.
//
// quantity must be at least 1.
func (c *Cart) RemoveItem(productID string, quantity int) bool {
	i := c.FindItemIndex(productID)
	if i < 0 {
		return false
	}

	item := &c.items[i]
	if quantity >= item.Quantity {
		c.total -= item.LineTotal()
		c.items = slices.Delete(c.items, i, i+1)
		return true
	}

	item.Quantity -= quantity
	c.total -= item.Price.Times(quantity)
	return true
}

// FindItemIndex returns the index of the line for productID, or -1.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Item returns the line for productID.
func (c *Cart) Item(productID string) (LineItem, bool) {
	if i := c.FindItemIndex(productID); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total returns the running total.
func (c *Cart) Total() Money {
	return c.total
}

// Recompute sums the line totals from scratch.
func (c *Cart) Recompute() Money {
	var sum Money
	for _, item := range c.items {
		sum += item.LineTotal()
	}
	return sum
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	return slices.Clone(c.items)
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Snapshot returns a deep copy. Mutating either cart afterwards never
// affects the other.
func (c *Cart) Snapshot() Cart {
	return Cart{
		items: slices.Clone(c.items),
		total: c.total,
	}
}
