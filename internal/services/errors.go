package services

import "errors"

// Sentinel errors handlers translate into HTTP statuses. Upstream
// spreadsheet failures are wrapped and surface as 500s.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
)
