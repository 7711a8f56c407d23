package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"

	"github.com/cloudmesh-labs/weavegate/internal/domain"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/filter"
	"github.com/cloudmesh-labs/weavegate/internal/domain/search/result"
	collectionuc "github.com/cloudmesh-labs/weavegate/internal/usecase/collection"
	healthuc "github.com/cloudmesh-labs/weavegate/internal/usecase/health"
	searchuc "github.com/cloudmesh-labs/weavegate/internal/usecase/search"
)

// fakeBackend implements the collection, search, and health contracts.
type fakeBackend struct {
	collections []string
	listErr     error

	knownClass string
	classErr   error

	rows       []result.Row
	searchErr  error
	searchDone bool
	lastTopK   int
	lastConds  []filter.Valid

	ready    bool
	version  string
	probeErr error
}

func (f *fakeBackend) ListCollections(_ context.Context) ([]string, error) {
	return f.collections, f.listErr
}

func (f *fakeBackend) Collection(_ context.Context, name string) (*models.Class, error) {
	if f.classErr != nil {
		return nil, f.classErr
	}
	if f.knownClass != "" && name != f.knownClass {
		return nil, domain.ErrNotFound
	}
	return &models.Class{Class: name}, nil
}

func (f *fakeBackend) NearText(
	_ context.Context, _ *models.Class,
	_ string, topK int, conds []filter.Valid, _ bool,
) ([]result.Row, error) {
	f.searchDone = true
	f.lastTopK = topK
	f.lastConds = conds
	return f.rows, f.searchErr
}

func (f *fakeBackend) Ready(_ context.Context) (bool, error) {
	return f.ready, f.probeErr
}

func (f *fakeBackend) Meta(_ context.Context) (string, error) {
	return f.version, f.probeErr
}

func newTestRouter(backend *fakeBackend) chi.Router {
	server := NewServer(
		collectionuc.New(backend),
		searchuc.New(backend),
		healthuc.New(backend),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	server.Register(r)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func floatPtr(f float64) *float64 { return &f }

// --- /collections ---

func TestListCollections(t *testing.T) {
	r := newTestRouter(&fakeBackend{collections: []string{"Docs", "Articles"}})

	rec := doRequest(t, r, http.MethodGet, "/collections", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Collections []string `json:"collections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Collections) != 2 {
		t.Errorf("collections = %v", resp.Collections)
	}
}

func TestListCollections_EmptyIsNotNull(t *testing.T) {
	r := newTestRouter(&fakeBackend{})

	rec := doRequest(t, r, http.MethodGet, "/collections", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); !bytes.Contains([]byte(got), []byte(`"collections":[]`)) {
		t.Errorf("expected empty array, got %s", got)
	}
}

func TestListCollections_BackendFailure(t *testing.T) {
	r := newTestRouter(&fakeBackend{listErr: errors.New("schema fetch failed")})

	rec := doRequest(t, r, http.MethodGet, "/collections", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == "" || resp.Details == "" {
		t.Errorf("error body incomplete: %+v", resp)
	}
}

// --- /query ---

func TestQuery_ScoresInBackendOrder(t *testing.T) {
	backend := &fakeBackend{rows: []result.Row{
		{UUID: "a", Distance: floatPtr(0.1), Properties: map[string]any{"title": "first"}},
		{UUID: "b", Distance: floatPtr(0.4), Properties: map[string]any{"title": "second"}},
	}}
	r := newTestRouter(backend)

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp []struct {
		Properties map[string]any `json:"properties"`
		Score      float64        `json:"score"`
		Distance   *float64       `json:"distance"`
		UUID       string         `json:"uuid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp))
	}
	if resp[0].UUID != "a" || resp[1].UUID != "b" {
		t.Errorf("order changed: %v", resp)
	}
	if math.Abs(resp[0].Score-0.9) > 1e-9 || math.Abs(resp[1].Score-0.6) > 1e-9 {
		t.Errorf("scores = %v / %v, want 0.9 / 0.6", resp[0].Score, resp[1].Score)
	}
	if resp[0].Distance == nil || *resp[0].Distance != 0.1 {
		t.Errorf("distance = %v", resp[0].Distance)
	}
}

func TestQuery_BogusFilterOperatorRunsUnfiltered(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRouter(backend)

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
		"filters": map[string]any{
			"conditions": []map[string]any{
				{"field": "year", "operator": "bogus", "value": 2020},
			},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !backend.searchDone {
		t.Fatal("search should run despite the invalid condition")
	}
	if len(backend.lastConds) != 0 {
		t.Errorf("no conditions should survive, got %v", backend.lastConds)
	}
}

func TestQuery_NonObjectFiltersRunsUnfiltered(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRouter(backend)

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
		"filters":         "garbage",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !backend.searchDone {
		t.Fatal("search should run when filters is not an object")
	}
	if len(backend.lastConds) != 0 {
		t.Errorf("no conditions should survive, got %v", backend.lastConds)
	}
}

func TestQuery_ConditionsNotAListRunsUnfiltered(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRouter(backend)

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
		"filters":         map[string]any{"conditions": "not-a-list"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !backend.searchDone {
		t.Fatal("search should run when conditions is not a list")
	}
	if len(backend.lastConds) != 0 {
		t.Errorf("no conditions should survive, got %v", backend.lastConds)
	}
}

func TestQuery_TopKCoercion(t *testing.T) {
	tests := []struct {
		name string
		topK any
		want int
	}{
		{"integer", 7, 7},
		{"float truncates", 5.7, 5},
		{"numeric string", "7", 7},
		{"garbage string falls back to default", "lots", 5},
		{"absent falls back to default", nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			r := newTestRouter(backend)

			body := map[string]any{
				"collection_name": "Docs",
				"query":           "hello",
			}
			if tt.topK != nil {
				body["top_k"] = tt.topK
			}

			rec := doRequest(t, r, http.MethodPost, "/query", body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if backend.lastTopK != tt.want {
				t.Errorf("topK = %d, want %d", backend.lastTopK, tt.want)
			}
		})
	}
}

func TestQuery_MissingQueryIs400BeforeBackend(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRouter(backend)

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if backend.searchDone {
		t.Error("backend must not be called for an invalid request")
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error key in the response")
	}
}

func TestQuery_UnknownCollectionIs404(t *testing.T) {
	r := newTestRouter(&fakeBackend{knownClass: "Docs"})

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Ghost",
		"query":           "hello",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !bytes.Contains([]byte(resp.Error), []byte("Ghost")) {
		t.Errorf("error should name the collection: %q", resp.Error)
	}
}

func TestQuery_InvalidExcludeFieldsIs400(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRouter(backend)

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
		"exclude_fields":  "not-a-list",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if backend.searchDone {
		t.Error("backend must not be called")
	}
}

func TestQuery_NonJSONBodyIs400(t *testing.T) {
	r := newTestRouter(&fakeBackend{})

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestQuery_BackendFailureIs500WithDetails(t *testing.T) {
	r := newTestRouter(&fakeBackend{searchErr: errors.New("graphql exploded")})

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !bytes.Contains([]byte(resp.Details), []byte("graphql exploded")) {
		t.Errorf("details should carry the backend message: %q", resp.Details)
	}
}

func TestQuery_EmptyResultIsEmptyArray(t *testing.T) {
	r := newTestRouter(&fakeBackend{})

	rec := doRequest(t, r, http.MethodPost, "/query", map[string]any{
		"collection_name": "Docs",
		"query":           "hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

// --- /health ---

func TestHealth_Healthy(t *testing.T) {
	r := newTestRouter(&fakeBackend{ready: true, version: "1.26.6"})

	rec := doRequest(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Status          string `json:"status"`
		WeaviateVersion string `json:"weaviate_version"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" || resp.WeaviateVersion != "1.26.6" {
		t.Errorf("health = %+v", resp)
	}
}

func TestHealth_NotReadyIs503(t *testing.T) {
	r := newTestRouter(&fakeBackend{ready: false, version: "1.26.6"})

	rec := doRequest(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealth_ProbeFailureIs500(t *testing.T) {
	r := newTestRouter(&fakeBackend{probeErr: errors.New("connection refused")})

	rec := doRequest(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "unhealthy" || resp.Message == "" {
		t.Errorf("health = %+v", resp)
	}
}
