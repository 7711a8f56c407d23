package weavegate

import "github.com/cloudmesh-labs/weavegate/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound   = domain.ErrNotFound
	ErrValidation = domain.ErrValidation
	ErrBackend    = domain.ErrBackend
)
