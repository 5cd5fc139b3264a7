// ABOUTME: Error kinds shared by the store, importer, and file storage
// ABOUTME: Callers classify failures with errors.Is against these sentinels
package models

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)
