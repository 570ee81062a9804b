package cli

import (
	"errors"
	"fmt"
	"io"
	"iter"

	perrors "github.com/abgdnv/inventory/internal/inventory/errors"
	"github.com/abgdnv/inventory/internal/inventory/store"
	"github.com/shopspring/decimal"
)

// printProducts writes one line per product and returns how many were written.
func printProducts(w io.Writer, products iter.Seq[store.Product]) int {
	n := 0
	for p := range products {
		fmt.Fprintln(w, p)
		n++
	}
	return n
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// describeError turns a catalog error into a message for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, perrors.ErrPersistenceInconsistent):
		return fmt.Sprintf("The change was applied but could not be saved, retry saving before exiting: %v", err)
	case errors.Is(err, perrors.ErrDuplicateCode):
		return fmt.Sprintf("A product with that code already exists: %v", err)
	case errors.Is(err, perrors.ErrProductNotFound):
		return fmt.Sprintf("Product not found: %v", err)
	case errors.Is(err, perrors.ErrValidation):
		return fmt.Sprintf("Invalid data: %v", err)
	case errors.Is(err, perrors.ErrStorageRead):
		return fmt.Sprintf("The inventory file could not be read: %v", err)
	case errors.Is(err, perrors.ErrStorageWrite):
		return fmt.Sprintf("The inventory file could not be written: %v", err)
	case errors.Is(err, perrors.ErrNotInitialized):
		return "The inventory has not been loaded."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
