package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/abgdnv/inventory/internal/inventory/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newLoadedStore returns a loaded FileStore in a temp dir, seeded with products.
func newLoadedStore(t *testing.T, products ...store.Product) *store.FileStore {
	t.Helper()
	s := store.NewFileStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, s.Load())
	for _, p := range products {
		require.NoError(t, s.Add(p))
	}
	return s
}

func seedProduct(code, name, price string, stock int, supplier string) store.Product {
	return store.Product{
		Code:     code,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Supplier: store.Supplier{Name: supplier, Contact: "info@" + strings.ToLower(supplier) + ".com"},
	}
}

func runMenu(t *testing.T, catalog store.CatalogStore, input ...string) string {
	t.Helper()
	var out bytes.Buffer
	menu := NewMenu(catalog, discardLogger(), strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func Test_Menu_AddAndList(t *testing.T) {
	// given
	catalog := newLoadedStore(t)
	// when
	out := runMenu(t, catalog,
		"1", "A1", "Tornillo", "0,10", "500", "Acme", "acme@example.com",
		"2",
		"8",
	)
	// then
	assert.Contains(t, out, "Product A1 added.")
	assert.Contains(t, out, "[A1]  Tornillo - 0.10 € (500 units) Supplier: Acme (acme@example.com)")
	assert.Contains(t, out, "Inventory saved. Bye!")

	fresh := store.NewFileStore(catalog.Path())
	require.NoError(t, fresh.Load())
	found, err := fresh.Find("A1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.1").Equal(found.Price))
}

func Test_Menu_AddRetriesInvalidNumbers(t *testing.T) {
	// given
	catalog := newLoadedStore(t)
	// when
	out := runMenu(t, catalog,
		"1", "A1", "Tornillo", "cheap", "", "1.5", "many", "3", "Acme", "",
		"8",
	)
	// then
	assert.Contains(t, out, `"cheap" is not a valid price.`)
	assert.Contains(t, out, "A price is required.")
	assert.Contains(t, out, `"many" is not a whole number.`)
	found, err := catalog.Find("A1")
	require.NoError(t, err)
	assert.Equal(t, 3, found.Stock)
}

func Test_Menu_AddDuplicate(t *testing.T) {
	// given
	catalog := newLoadedStore(t, seedProduct("A1", "Tornillo", "1", 1, "Acme"))
	// when
	out := runMenu(t, catalog,
		"1", "A1", "Otro", "2", "2", "Globex", "",
		"8",
	)
	// then
	assert.Contains(t, out, "A product with that code already exists")
	found, err := catalog.Find("A1")
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", found.Name)
}

func Test_Menu_Find(t *testing.T) {
	catalog := newLoadedStore(t,
		seedProduct("B2", "Tuerca", "0.05", 100, "Acme"),
		seedProduct("C3", "Arandela", "0.02", 300, "Globex"),
	)

	testCases := []struct {
		name     string
		code     string
		expected string
	}{
		{name: "found", code: "C3", expected: "[C3]  Arandela - 0.02 € (300 units)"},
		{name: "not found", code: "A1", expected: "Product not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := runMenu(t, catalog, "3", tc.code, "8")
			assert.Contains(t, out, tc.expected)
		})
	}
}

func Test_Menu_ModifyKeepsEmptyFields(t *testing.T) {
	// given
	catalog := newLoadedStore(t, seedProduct("A1", "Tornillo", "0.10", 500, "Acme"))
	// when
	out := runMenu(t, catalog, "4", "A1", "", "", "5", "8")
	// then
	assert.Contains(t, out, "Leave a field empty to keep its value.")
	found, err := catalog.Find("A1")
	require.NoError(t, err)
	assert.Equal(t, 5, found.Stock)
	assert.Equal(t, "Tornillo", found.Name)
	assert.True(t, decimal.RequireFromString("0.10").Equal(found.Price))
}

func Test_Menu_ModifyRejectsNegativeStock(t *testing.T) {
	// given
	catalog := newLoadedStore(t, seedProduct("A1", "Tornillo", "0.10", 500, "Acme"))
	// when
	out := runMenu(t, catalog, "4", "A1", "", "", "-1", "8")
	// then
	assert.Contains(t, out, "Invalid data")
	found, err := catalog.Find("A1")
	require.NoError(t, err)
	assert.Equal(t, 500, found.Stock)
}

func Test_Menu_ModifyNothing(t *testing.T) {
	catalog := newLoadedStore(t, seedProduct("A1", "Tornillo", "0.10", 500, "Acme"))
	out := runMenu(t, catalog, "4", "A1", "", "", "", "8")
	assert.Contains(t, out, "Nothing changed.")
}

func Test_Menu_Delete(t *testing.T) {
	// given
	catalog := newLoadedStore(t,
		seedProduct("A1", "Tornillo", "0.10", 500, "Acme"),
		seedProduct("B2", "Tuerca", "0.05", 100, "Acme"),
	)
	// when
	out := runMenu(t, catalog, "5", "B2", "5", "Z9", "8")
	// then
	assert.Contains(t, out, "Product B2 deleted.")
	assert.Contains(t, out, "Product not found")
	list, err := catalog.List()
	require.NoError(t, err)
	assert.Len(t, slices.Collect(list), 1)
}

func Test_Menu_TotalAndSupplier(t *testing.T) {
	// given
	catalog := newLoadedStore(t,
		seedProduct("A1", "Tornillo", "10", 3, "Acme"),
		seedProduct("B2", "Tuerca", "2.5", 4, "Globex"),
	)
	// when
	out := runMenu(t, catalog, "6", "7", "Acme", "7", "Initech", "8")
	// then
	assert.Contains(t, out, "Total inventory value: 40.00 €")
	assert.Contains(t, out, "[A1]  Tornillo")
	assert.NotContains(t, out, "[B2]  Tuerca")
	assert.Contains(t, out, "No products from supplier Initech.")
}

func Test_Menu_UnknownOption(t *testing.T) {
	catalog := newLoadedStore(t)
	out := runMenu(t, catalog, "9", "8")
	assert.Contains(t, out, `Unknown option "9"`)
}

func Test_Menu_EndOfInputSaves(t *testing.T) {
	// given
	catalog := newLoadedStore(t)
	var out bytes.Buffer
	menu := NewMenu(catalog, discardLogger(), strings.NewReader(""), &out)
	// when
	err := menu.Run(context.Background())
	// then
	require.NoError(t, err)
	data, readErr := os.ReadFile(catalog.Path())
	require.NoError(t, readErr)
	assert.Equal(t, "[]\n", string(data))
}

func Test_Menu_SaveFailureStaysInMenu(t *testing.T) {
	// given
	catalog := store.NewFileStore(filepath.Join(t.TempDir(), "missing", "inventario.json"))
	require.NoError(t, catalog.Load())
	var out bytes.Buffer
	menu := NewMenu(catalog, discardLogger(), strings.NewReader("8\n"), &out)
	// when
	err := menu.Run(context.Background())
	// then
	assert.Error(t, err, "end of input retries the save and reports the failure")
	assert.Contains(t, out.String(), "could not be written")
	assert.NotContains(t, out.String(), "Bye!")
}
