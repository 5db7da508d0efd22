package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpick/shelfpick-server/internal/domain"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLibraryStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/library/stats",
		Summary:     "Library statistics",
		Description: "Returns aggregate statistics over the loaded library",
		Tags:        []string{"Library"},
	}, s.handleGetLibraryStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBehaviourProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/library/profile",
		Summary:     "Behaviour profile",
		Description: "Returns the reading profile derived from completed books",
		Tags:        []string{"Library"},
	}, s.handleGetProfile)
}

// StatsOutput wraps library statistics for Huma.
type StatsOutput struct {
	Body service.LibraryStats
}

func (s *Server) handleGetLibraryStats(_ context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: s.services.Library.Stats()}, nil
}

// ProfileResponse contains the behaviour profile in API responses.
type ProfileResponse struct {
	Profile domain.Profile `json:"profile"`
	Empty   bool           `json:"empty" doc:"True when no completed books were available to profile"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

func (s *Server) handleGetProfile(_ context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile := s.services.Library.Profile()
	return &ProfileOutput{
		Body: ProfileResponse{
			Profile: profile,
			Empty:   profile.IsEmpty(),
		},
	}, nil
}
