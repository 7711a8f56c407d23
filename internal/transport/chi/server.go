// Package chi wires the gateway's HTTP surface onto a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloudmesh-labs/weavegate/internal/domain"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/request"
	collectionuc "github.com/cloudmesh-labs/weavegate/internal/usecase/collection"
	healthuc "github.com/cloudmesh-labs/weavegate/internal/usecase/health"
	searchuc "github.com/cloudmesh-labs/weavegate/internal/usecase/search"
)

// Server holds the HTTP handlers for the gateway API.
type Server struct {
	collections *collectionuc.Service
	search      *searchuc.Service
	health      *healthuc.Service
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	collections *collectionuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		collections: collections,
		search:      search,
		health:      health,
		logger:      logger,
	}
}

// Register mounts the gateway routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/collections", s.ListCollections)
	r.Post("/query", s.Query)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	names, err := s.collections.List(r.Context())
	if err != nil {
		s.logger.Error("list collections failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to retrieve collections", errorDetails(err))
		return
	}

	writeJSON(w, http.StatusOK, collectionsResponse{Collections: names})
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var body queryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON: "+err.Error(), "")
		return
	}

	req, err := request.New(
		body.CollectionName, body.Query, body.topK(), body.ExcludeFields, body.filterSpec(),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorDetails(err), "")
		return
	}

	results, err := s.search.Query(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("Collection '%s' not found", body.CollectionName), "")
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, errorDetails(err), "")
		default:
			s.logger.Error("query failed",
				zap.String("collection", body.CollectionName), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error", errorDetails(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, resultsToJSON(results))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report, err := s.health.Check(r.Context())
	if err != nil {
		s.logger.Error("health probe failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, healthResponse{
			Status:  "unhealthy",
			Message: err.Error(),
		})
		return
	}

	if !report.Ready {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: "weaviate is not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "healthy",
		WeaviateVersion: report.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

// errorDetails strips the sentinel prefix so clients see the underlying
// message, not the internal wrapping chain.
func errorDetails(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrBackend, domain.ErrValidation} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
