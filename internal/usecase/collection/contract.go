package collection

import "context"

// Repository is the backend contract for collection listing.
type Repository interface {
	ListCollections(ctx context.Context) ([]string, error)
}
