package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpick/shelfpick-server/internal/service"
)

func (s *Server) registerFunnelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFunnelState",
		Method:      http.MethodGet,
		Path:        "/api/v1/funnel",
		Summary:     "Funnel state",
		Description: "Returns the current step, selections, and candidate count",
		Tags:        []string{"Funnel"},
	}, s.handleGetFunnelState)

	huma.Register(s.api, huma.Operation{
		OperationID: "advanceFunnel",
		Method:      http.MethodPost,
		Path:        "/api/v1/funnel/advance",
		Summary:     "Advance the funnel",
		Description: "Applies a selection to the funnel's current step",
		Tags:        []string{"Funnel"},
	}, s.handleAdvanceFunnel)

	huma.Register(s.api, huma.Operation{
		OperationID: "funnelGoBack",
		Method:      http.MethodPost,
		Path:        "/api/v1/funnel/back",
		Summary:     "Go back",
		Description: "Rewinds the funnel to an earlier step, clearing later selections",
		Tags:        []string{"Funnel"},
	}, s.handleFunnelGoBack)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetFunnel",
		Method:      http.MethodPost,
		Path:        "/api/v1/funnel/reset",
		Summary:     "Reset the funnel",
		Description: "Starts a fresh traversal over the current backlog",
		Tags:        []string{"Funnel"},
	}, s.handleResetFunnel)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendation",
		Method:      http.MethodPost,
		Path:        "/api/v1/funnel/recommendation",
		Summary:     "Get recommendation",
		Description: "Scores the surviving candidates and returns the pick",
		Tags:        []string{"Funnel"},
	}, s.handleGetRecommendation)
}

// FunnelStateOutput wraps the funnel state for Huma.
type FunnelStateOutput struct {
	Body service.FunnelState
}

func (s *Server) handleGetFunnelState(_ context.Context, _ *struct{}) (*FunnelStateOutput, error) {
	return &FunnelStateOutput{Body: s.services.Funnel.State()}, nil
}

// AdvanceFunnelInput is the request body for a funnel step selection.
type AdvanceFunnelInput struct {
	Body struct {
		Step      int    `json:"step" minimum:"1" maximum:"4" doc:"Step the selection answers; must be the funnel's current step"`
		Selection string `json:"selection" minLength:"1" doc:"One of the step's allowed selections"`
	}
}

func (s *Server) handleAdvanceFunnel(_ context.Context, input *AdvanceFunnelInput) (*FunnelStateOutput, error) {
	state, err := s.services.Funnel.Advance(service.AdvanceRequest{
		Step:      input.Body.Step,
		Selection: input.Body.Selection,
	})
	if err != nil {
		return nil, err
	}
	return &FunnelStateOutput{Body: state}, nil
}

// FunnelGoBackInput is the request body for rewinding the funnel.
type FunnelGoBackInput struct {
	Body struct {
		Target int `json:"target" minimum:"1" maximum:"4" doc:"Step to return to; must be earlier than the current step"`
	}
}

func (s *Server) handleFunnelGoBack(_ context.Context, input *FunnelGoBackInput) (*FunnelStateOutput, error) {
	return &FunnelStateOutput{Body: s.services.Funnel.GoBack(input.Body.Target)}, nil
}

func (s *Server) handleResetFunnel(_ context.Context, _ *struct{}) (*FunnelStateOutput, error) {
	return &FunnelStateOutput{Body: s.services.Funnel.Reset()}, nil
}

// RecommendationOutput wraps the recommendation for Huma.
type RecommendationOutput struct {
	Body service.Recommendation
}

func (s *Server) handleGetRecommendation(_ context.Context, _ *struct{}) (*RecommendationOutput, error) {
	rec, err := s.services.Funnel.Recommend()
	if err != nil {
		return nil, err
	}
	return &RecommendationOutput{Body: rec}, nil
}
