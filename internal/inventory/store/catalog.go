package store

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sync"

	perrors "github.com/abgdnv/inventory/internal/inventory/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var _ CatalogStore = (*FileStore)(nil)

// FileStore implements CatalogStore on top of a single JSON file.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	products []Product
	loaded   bool
	validate *validator.Validate
}

// NewFileStore creates a new FileStore for the catalog file at path.
// The store starts unloaded: call Load before any other operation.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		products: make([]Product, 0),
		validate: newValidator(),
	}
}

// newValidator returns a validator that understands decimal.Decimal fields.
// A decimal validates as its sign, so gte=0 holds exactly for non-negative values
// at any scale, including ones too small for a float64.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Path returns the catalog file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the catalog file and replaces the in-memory catalog with its contents.
// On failure the previous state, loaded or not, is kept.
func (s *FileStore) Load() error {
	products, found, err := readCatalog(s.path)
	if err != nil {
		return err
	}
	if !found {
		products = make([]Product, 0)
	}

	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if err := s.validateProduct(p); err != nil {
			return fmt.Errorf("%w %s: record %d: %w", perrors.ErrStorageRead, s.path, i, err)
		}
		if _, dup := seen[p.Code]; dup {
			return fmt.Errorf("%w %s: record %d: %w: %s", perrors.ErrStorageRead, s.path, i, perrors.ErrDuplicateCode, p.Code)
		}
		seen[p.Code] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.loaded = true
	return nil
}

// Save writes the whole catalog to the catalog file.
func (s *FileStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return perrors.ErrNotInitialized
	}
	return writeCatalog(s.path, s.products)
}

// Add appends product to the catalog and saves it.
// If the save fails the product stays in memory and ErrPersistenceInconsistent is returned.
func (s *FileStore) Add(product Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return perrors.ErrNotInitialized
	}
	if err := s.validateProduct(product); err != nil {
		return err
	}
	if s.indexOf(product.Code) >= 0 {
		return fmt.Errorf("%w: %s", perrors.ErrDuplicateCode, product.Code)
	}

	s.products = append(s.products, product)
	return s.flush()
}

// List returns all products in catalog order. Each range over the result starts a new traversal.
func (s *FileStore) List() (iter.Seq[Product], error) {
	return s.filter(func(Product) bool { return true })
}

// Find retrieves a product by its code.
func (s *FileStore) Find(code string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return Product{}, perrors.ErrNotInitialized
	}
	i := s.indexOf(code)
	if i < 0 {
		return Product{}, fmt.Errorf("%w: %s", perrors.ErrProductNotFound, code)
	}
	return s.products[i], nil
}

// Modify updates the fields set in changes on the product with the given code and saves the catalog.
func (s *FileStore) Modify(code string, changes Changes) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return Product{}, perrors.ErrNotInitialized
	}
	i := s.indexOf(code)
	if i < 0 {
		return Product{}, fmt.Errorf("%w: %s", perrors.ErrProductNotFound, code)
	}

	updated := changes.apply(s.products[i])
	if err := s.validateProduct(updated); err != nil {
		return Product{}, err
	}
	s.products[i] = updated
	return updated, s.flush()
}

// Delete removes every product with the given code and saves the catalog.
func (s *FileStore) Delete(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return perrors.ErrNotInitialized
	}
	kept := slices.DeleteFunc(slices.Clone(s.products), func(p Product) bool {
		return p.Code == code
	})
	if len(kept) == len(s.products) {
		return fmt.Errorf("%w: %s", perrors.ErrProductNotFound, code)
	}

	s.products = kept
	return s.flush()
}

// TotalValue returns the sum of price * stock over all products.
func (s *FileStore) TotalValue() (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return decimal.Zero, perrors.ErrNotInitialized
	}
	total := decimal.Zero
	for _, p := range s.products {
		total = total.Add(p.Value())
	}
	return total, nil
}

// ByProvider returns the products supplied by supplierName, in catalog order.
// The match is exact; no match yields an empty sequence.
func (s *FileStore) ByProvider(supplierName string) (iter.Seq[Product], error) {
	return s.filter(func(p Product) bool { return p.Supplier.Name == supplierName })
}

// filter returns a sequence over a snapshot of the products matching keep.
// The snapshot is taken when ranging starts, so yield may call back into the store.
func (s *FileStore) filter(keep func(Product) bool) (iter.Seq[Product], error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		return nil, perrors.ErrNotInitialized
	}

	return func(yield func(Product) bool) {
		s.mu.RLock()
		snapshot := slices.Clone(s.products)
		s.mu.RUnlock()

		for _, p := range snapshot {
			if !keep(p) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}

// indexOf returns the position of the first product with the given code, or -1
// once every product has been examined without a match. Callers hold s.mu.
func (s *FileStore) indexOf(code string) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.Code == code })
}

// flush saves the catalog after an in-memory change. Callers hold s.mu.
func (s *FileStore) flush() error {
	if err := writeCatalog(s.path, s.products); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrPersistenceInconsistent, err)
	}
	return nil
}

func (s *FileStore) validateProduct(p Product) error {
	if err := s.validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("%w %q: %w", perrors.ErrValidation, p.Code, validationErrors)
		}
		return fmt.Errorf("%w %q: %w", perrors.ErrValidation, p.Code, err)
	}
	return nil
}
