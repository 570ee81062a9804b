// Package store provides the product catalog and its file persistence.
package store

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// CatalogStore is an interface for catalog operations.
// It abstracts the underlying persistence so the menu and commands can be tested against fakes.
type CatalogStore interface {
	// Load replaces the catalog with the contents of the catalog file.
	// A missing file yields an empty catalog. Returns ErrStorageRead if the file can't be parsed.
	Load() error

	// Save writes the whole catalog to the catalog file.
	// Returns ErrStorageWrite if the file can't be written.
	Save() error

	// Add appends a new product and saves the catalog.
	// Returns ErrDuplicateCode if a product with the same code already exists.
	Add(product Product) error

	// List returns all products in catalog order.
	List() (iter.Seq[Product], error)

	// Find retrieves a single product by its code.
	// Returns ErrProductNotFound if no product exists with the given code.
	Find(code string) (Product, error)

	// Modify updates the fields set in changes and saves the catalog.
	// Returns ErrProductNotFound if no product exists with the given code.
	Modify(code string, changes Changes) (Product, error)

	// Delete removes the product with the given code and saves the catalog.
	// Returns ErrProductNotFound if no product exists with the given code.
	Delete(code string) error

	// TotalValue returns the sum of price * stock over all products.
	TotalValue() (decimal.Decimal, error)

	// ByProvider returns the products whose supplier name equals supplierName, in catalog order.
	ByProvider(supplierName string) (iter.Seq[Product], error)
}

// Supplier holds the contact data embedded in a product.
type Supplier struct {
	Name    string `validate:"required"`
	Contact string
}

// String renders the supplier the way the menu shows it.
func (s Supplier) String() string {
	return fmt.Sprintf("Supplier: %s (%s)", s.Name, s.Contact)
}

// Product represents a product entity in the catalog.
type Product struct {
	Code     string          `validate:"required"`
	Name     string          `validate:"required"`
	Price    decimal.Decimal `validate:"gte=0"`
	Stock    int             `validate:"gte=0"`
	Supplier Supplier
}

// String renders the product the way the menu shows it.
func (p Product) String() string {
	return fmt.Sprintf("[%s]  %s - %s € (%d units) %s", p.Code, p.Name, p.Price.StringFixed(2), p.Stock, p.Supplier)
}

// Value returns price * stock for the product.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// Changes lists the product fields to update. Nil fields are left unchanged.
type Changes struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// IsEmpty reports whether no field is set.
func (c Changes) IsEmpty() bool {
	return c.Name == nil && c.Price == nil && c.Stock == nil
}

// apply returns a copy of p with the set fields replaced.
func (c Changes) apply(p Product) Product {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.Stock != nil {
		p.Stock = *c.Stock
	}
	return p
}
