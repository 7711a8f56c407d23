package health

import "context"

// Backend exposes the probes the health check needs.
type Backend interface {
	Ready(ctx context.Context) (bool, error)
	Meta(ctx context.Context) (string, error)
}
