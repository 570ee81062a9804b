package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	perrors "github.com/abgdnv/inventory/internal/inventory/errors"
	"github.com/google/renameio/v2"
	"github.com/shopspring/decimal"
)

const filePerm = 0o644

// productRecord is the on-disk shape of a product. Keys are fixed for compatibility with existing files.
// Pointer fields let the decoder tell a missing key from a zero value.
type productRecord struct {
	Code     *string          `json:"codigo"`
	Name     *string          `json:"nombre"`
	Price    *json.RawMessage `json:"precio"`
	Stock    *int             `json:"stock"`
	Supplier *supplierRecord  `json:"proveedor"`
}

type supplierRecord struct {
	Name    *string `json:"nombre"`
	Contact *string `json:"contacto"`
}

// readCatalog reads the catalog file at path.
// It returns (nil, false, nil) when the file does not exist.
func readCatalog(path string) ([]Product, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w %s: %w", perrors.ErrStorageRead, path, err)
	}

	var records []productRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&records); err != nil {
		return nil, false, fmt.Errorf("%w %s: %w", perrors.ErrStorageRead, path, err)
	}
	if dec.More() {
		return nil, false, fmt.Errorf("%w %s: unexpected data after the product list", perrors.ErrStorageRead, path)
	}
	if records == nil {
		return nil, false, fmt.Errorf("%w %s: expected a list of products", perrors.ErrStorageRead, path)
	}

	products := make([]Product, 0, len(records))
	for i, r := range records {
		p, err := r.toProduct()
		if err != nil {
			return nil, false, fmt.Errorf("%w %s: record %d: %w", perrors.ErrStorageRead, path, i, err)
		}
		products = append(products, p)
	}
	return products, true, nil
}

// writeCatalog replaces the catalog file at path with products.
// The data goes to a temporary file in the same directory which is then renamed over path.
func writeCatalog(path string, products []Product) error {
	records := make([]productRecord, len(products))
	for i, p := range products {
		records[i] = toRecord(p)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %s: %w", perrors.ErrStorageWrite, path, err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w %s: %w", perrors.ErrStorageWrite, path, err)
	}
	return nil
}

// toProduct converts a decoded record, failing when a key is missing.
func (r productRecord) toProduct() (Product, error) {
	switch {
	case r.Code == nil:
		return Product{}, fmt.Errorf("missing key %q", "codigo")
	case r.Name == nil:
		return Product{}, fmt.Errorf("missing key %q", "nombre")
	case r.Price == nil:
		return Product{}, fmt.Errorf("missing key %q", "precio")
	case r.Stock == nil:
		return Product{}, fmt.Errorf("missing key %q", "stock")
	case r.Supplier == nil:
		return Product{}, fmt.Errorf("missing key %q", "proveedor")
	case r.Supplier.Name == nil:
		return Product{}, fmt.Errorf("missing key %q", "proveedor.nombre")
	}

	price, err := parsePrice(*r.Price)
	if err != nil {
		return Product{}, err
	}
	p := Product{
		Code:  *r.Code,
		Name:  *r.Name,
		Price: price,
		Stock: *r.Stock,
		Supplier: Supplier{
			Name: *r.Supplier.Name,
		},
	}
	if r.Supplier.Contact != nil {
		p.Supplier.Contact = *r.Supplier.Contact
	}
	return p, nil
}

// parsePrice accepts only a bare JSON number, so a quoted price is a shape error.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return decimal.Zero, fmt.Errorf("key %q must be a number, got %s", "precio", raw)
	}
	price, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %s: %w", raw, err)
	}
	return price, nil
}

func toRecord(p Product) productRecord {
	price := json.RawMessage(p.Price.String())
	return productRecord{
		Code:  &p.Code,
		Name:  &p.Name,
		Price: &price,
		Stock: &p.Stock,
		Supplier: &supplierRecord{
			Name:    &p.Supplier.Name,
			Contact: &p.Supplier.Contact,
		},
	}
}
