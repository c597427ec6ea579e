package domain

// Product is an immutable catalog entry.
type Product struct {
	ID    string `json:"id" validate:"required,notblank"`
	Name  string `json:"name" validate:"required,notblank"`
	Price Money  `json:"price" validate:"gte=0"`
}

// NewProduct builds a product from a decimal price literal.
func NewProduct(id, name, price string) Product {
	return Product{ID: id, Name: name, Price: MustParseMoney(price)}
}
