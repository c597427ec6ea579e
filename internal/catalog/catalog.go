// Package catalog holds the fixed, read-only product list.
package catalog

import (
	"fmt"
	"slices"

	"github.com/utafrali/cartsim/internal/domain"
	apperrors "github.com/utafrali/cartsim/pkg/errors"
	"github.com/utafrali/cartsim/pkg/validator"
)

// Catalog is an immutable list of products indexed by id.
type Catalog struct {
	products []domain.Product
	index    map[string]int
}

// New validates products and builds a catalog. Ids must be unique.
func New(products ...domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		if err := validator.Validate(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, apperrors.AlreadyExists("product", "id", p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// DefaultProducts returns the compiled-in product list.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		domain.NewProduct("ABC", "Pencil", "20.00"),
		domain.NewProduct("CDE", "Paper", "10.00"),
		domain.NewProduct("GHI", "Eraser", "5.00"),
		domain.NewProduct("JKL", "Crayons", "50.00"),
		domain.NewProduct("MNO", "Ballpen", "15.00"),
	}
}

// Default returns the catalog built from DefaultProducts.
func Default() *Catalog {
	c, err := New(DefaultProducts()...)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// List returns the products in declaration order.
func (c *Catalog) List() []domain.Product {
	return slices.Clone(c.products)
}

// FindByID looks a product up by exact id.
func (c *Catalog) FindByID(id string) (domain.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
