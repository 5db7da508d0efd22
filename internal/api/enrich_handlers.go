package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/shelfpick/shelfpick-server/internal/errors"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

func (s *Server) registerEnrichRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "enrichBacklog",
		Method:      http.MethodPost,
		Path:        "/api/v1/enrich",
		Summary:     "Enrich backlog",
		Description: "Fetches external metadata for want-to-read books that have none yet",
		Tags:        []string{"Enrichment"},
	}, s.handleEnrichBacklog)
}

// EnrichOutput wraps the enrichment report for Huma.
type EnrichOutput struct {
	Body service.EnrichmentReport
}

func (s *Server) handleEnrichBacklog(ctx context.Context, _ *struct{}) (*EnrichOutput, error) {
	if !s.config.Enrich.Enabled {
		return nil, domainerrors.Conflict("enrichment is disabled")
	}

	report, err := s.services.Enrich.EnrichBacklog(ctx)
	if err != nil {
		return nil, err
	}
	return &EnrichOutput{Body: report}, nil
}
