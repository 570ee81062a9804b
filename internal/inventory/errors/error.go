// Package errors provides the error values returned by the inventory catalog.
package errors

import "errors"

var (
	ErrStorageRead     = errors.New("can't read catalog file")
	ErrStorageWrite    = errors.New("can't write catalog file")
	ErrDuplicateCode   = errors.New("product code already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrValidation      = errors.New("invalid product")
	ErrNotInitialized  = errors.New("catalog not loaded")
)

// ErrPersistenceInconsistent is returned together with ErrStorageWrite when a mutation
// was applied in memory but could not be flushed to the catalog file.
var ErrPersistenceInconsistent = errors.New("catalog changed in memory but not saved")
