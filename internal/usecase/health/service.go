// Package health reports backend readiness and version.
package health

import (
	"context"
	"fmt"
)

// Report is the health probe outcome. Ready distinguishes a backend
// that answered but is not serving from one that is; probe failures
// come back as an error instead.
type Report struct {
	Ready   bool
	Version string
}

// Service coordinates backend health checks.
type Service struct {
	backend Backend
}

// New creates a health service.
func New(backend Backend) *Service {
	return &Service{backend: backend}
}

// Check probes the backend. A probe transport failure is returned as an
// error; a reachable but unready backend yields Ready=false.
func (s *Service) Check(ctx context.Context) (Report, error) {
	version, err := s.backend.Meta(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("backend meta: %w", err)
	}

	ready, err := s.backend.Ready(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("backend readiness: %w", err)
	}

	return Report{Ready: ready, Version: version}, nil
}
