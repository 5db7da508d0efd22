package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health and library load status",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status      string `json:"status" doc:"Overall status: healthy or degraded"`
	TotalBooks  int    `json:"total_books" doc:"Number of books currently loaded"`
	BacklogSize int    `json:"backlog_size" doc:"Number of want-to-read candidates"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	stats := s.services.Library.Stats()

	status := "healthy"
	// An empty library usually means the export path is wrong or empty.
	if stats.TotalBooks == 0 {
		status = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:      status,
			TotalBooks:  stats.TotalBooks,
			BacklogSize: stats.BacklogBooks,
		},
	}, nil
}
