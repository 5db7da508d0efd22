package api

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpick/shelfpick-server/internal/config"
	"github.com/shelfpick/shelfpick-server/internal/domain"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T, books []domain.Book) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	library := service.NewLibraryService("", logger)
	library.Replace(books)

	cfg := &config.Config{
		Server: config.ServerConfig{Name: "ShelfPick Test"},
		Enrich: config.EnrichConfig{Enabled: true},
	}

	services := &Services{
		Library: library,
		Funnel:  service.NewFunnelService(library, rand.New(rand.NewSource(1)), logger),
		Enrich:  service.NewEnrichmentService(library, stubLookup{}, logger),
	}

	s := NewServer(services, cfg, logger)
	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

func testBooks() []domain.Book {
	read := func(y int) time.Time { return time.Date(y, 3, 1, 0, 0, 0, 0, time.UTC) }
	return []domain.Book{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert", Pages: 412, PublicationYear: 1965, AverageRating: 4.3, DateRead: read(2024)},
		{ID: "book-2", Title: "Piranesi", Author: "Susanna Clarke", Pages: 245, PublicationYear: 2020, AverageRating: 4.2, Shelves: []string{"to-read"}},
		{ID: "book-3", Title: "Middlemarch", Author: "George Eliot", Pages: 880, PublicationYear: 1871, AverageRating: 4.0, Shelves: []string{"want-to-read"}},
	}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 3, health.TotalBooks)
	assert.Equal(t, 2, health.BacklogSize)
}

func TestHealthCheck_EmptyLibraryIsDegraded(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
}

func TestGetLibraryStats(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Get("/api/v1/library/stats")
	assert.Equal(t, http.StatusOK, resp.Code)

	var stats service.LibraryStats
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 1, stats.ReadBooks)
	assert.Equal(t, 2, stats.BacklogBooks)
}

func TestGetProfile(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Get("/api/v1/library/profile")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Empty)
	assert.Equal(t, []string{"Frank Herbert"}, body.Profile.TopAuthors)
}

func TestFunnel_FullTraversal(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Get("/api/v1/funnel")
	assert.Equal(t, http.StatusOK, resp.Code)

	for _, step := range []map[string]any{
		{"step": 1, "selection": "any"},
		{"step": 2, "selection": "familiar"},
		{"step": 3, "selection": "old"},
		{"step": 4, "selection": "safe"},
	} {
		resp = ts.api.Post("/api/v1/funnel/advance", step)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp = ts.api.Post("/api/v1/funnel/recommendation")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var rec service.Recommendation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rec))
	assert.Equal(t, 2, rec.TotalCandidates)
	assert.NotEmpty(t, rec.Book.Title)
}

func TestFunnel_AdvanceInvalidSelection(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Post("/api/v1/funnel/advance", map[string]any{
		"step": 1, "selection": "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestFunnel_NoCandidatesIsUnprocessable(t *testing.T) {
	ts := setupTestServer(t, []domain.Book{
		{ID: "book-1", Title: "Doorstopper", Pages: 900, Shelves: []string{"to-read"}},
	})

	resp := ts.api.Post("/api/v1/funnel/advance", map[string]any{
		"step": 1, "selection": "quick",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "NO_CANDIDATES", apiErr.Code)
}

func TestFunnel_BackAndReset(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Post("/api/v1/funnel/advance", map[string]any{"step": 1, "selection": "any"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Post("/api/v1/funnel/advance", map[string]any{"step": 2, "selection": "different"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/funnel/back", map[string]any{"target": 1})
	require.Equal(t, http.StatusOK, resp.Code)

	var state service.FunnelState
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &state))
	assert.Equal(t, 1, state.CurrentStep)
	assert.Empty(t, state.Selections.Behaviour)

	resp = ts.api.Post("/api/v1/funnel/reset")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &state))
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 2, state.CandidateCount)
}

func TestRecommendation_BeforeResultIsValidationError(t *testing.T) {
	ts := setupTestServer(t, testBooks())

	resp := ts.api.Post("/api/v1/funnel/recommendation")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
