package service

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/shelfpick/shelfpick-server/internal/domain"
	domainerrors "github.com/shelfpick/shelfpick-server/internal/errors"
	"github.com/shelfpick/shelfpick-server/internal/validation"
)

// Recommendation is the funnel's terminal output.
type Recommendation struct {
	Book            domain.Book `json:"book"`
	Score           float64     `json:"score"`
	TotalCandidates int         `json:"total_candidates"`
}

// FunnelState is a read-only snapshot of the traversal for API consumers.
type FunnelState struct {
	CurrentStep    int               `json:"current_step"`
	Selections     domain.Selections `json:"selections"`
	CandidateCount int               `json:"candidate_count"`
	AtResult       bool              `json:"at_result"`
}

// FunnelService is the session controller for the decision funnel. It owns
// a single traversal at a time (one user, one session) and serializes all
// access to it.
type FunnelService struct {
	library   *LibraryService
	logger    *slog.Logger
	rng       *rand.Rand
	now       func() time.Time
	validator *validation.Validator

	mu    sync.Mutex
	state *domain.DecisionState
}

// NewFunnelService creates a funnel service. The rand source is injected
// so near-tie picks are reproducible in tests; pass nil for a time-seeded
// source.
func NewFunnelService(library *LibraryService, rng *rand.Rand, logger *slog.Logger) *FunnelService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FunnelService{
		library:   library,
		logger:    logger,
		rng:       rng,
		now:       time.Now,
		validator: validation.New(),
	}
}

// ensureState lazily starts a traversal over the current backlog.
// Callers must hold s.mu.
func (s *FunnelService) ensureState() *domain.DecisionState {
	if s.state == nil {
		s.state = domain.NewDecisionState(s.library.Backlog())
	}
	return s.state
}

// State returns the current traversal snapshot.
func (s *FunnelService) State() FunnelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensureState()
	return FunnelState{
		CurrentStep:    int(st.CurrentStep),
		Selections:     st.Selections,
		CandidateCount: st.CandidateCount(),
		AtResult:       st.AtResult(),
	}
}

// AdvanceRequest contains a funnel step selection.
type AdvanceRequest struct {
	Step      int    `json:"step" validate:"required,min=1,max=4"`
	Selection string `json:"selection" validate:"required"`
}

// Advance applies a selection to the funnel's current step.
func (s *FunnelService) Advance(req AdvanceRequest) (FunnelState, error) {
	if err := s.validator.Validate(req); err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensureState()

	step, selection := req.Step, req.Selection
	err := st.Advance(domain.Step(step), domain.Selection(selection))
	switch {
	case errors.Is(err, domain.ErrNoCandidates):
		s.logger.Info("funnel filter rejected, no candidates",
			"step", step,
			"selection", selection,
		)
		return s.snapshot(), domainerrors.NoCandidates("no backlog books match this choice; go back and relax it")
	case errors.Is(err, domain.ErrStepOrder):
		return s.snapshot(), domainerrors.Validationf("funnel is at step %d, not step %d", st.CurrentStep, step)
	case errors.Is(err, domain.ErrInvalidSelection):
		return s.snapshot(), domainerrors.Validationf("%q is not a valid selection for step %d", selection, step)
	case err != nil:
		return s.snapshot(), domainerrors.Internal("funnel advance failed").WithCause(err)
	}

	s.logger.Debug("funnel advanced",
		"step", step,
		"selection", selection,
		"candidates", st.CandidateCount(),
	)
	return s.snapshot(), nil
}

// GoBack rewinds the funnel to an earlier step, clearing downstream
// selections. Rewinding forward or out of range is a no-op.
func (s *FunnelService) GoBack(target int) FunnelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensureState()
	st.GoBack(domain.Step(target))
	return s.snapshot()
}

// Reset starts a fresh traversal over the current backlog. The behaviour
// profile is not recomputed; only the library service does that, on load.
func (s *FunnelService) Reset() FunnelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NewDecisionState(s.library.Backlog())
	return s.snapshot()
}

// Recommend scores the surviving candidates and picks the recommendation.
// The funnel must have reached the result step.
func (s *FunnelService) Recommend() (Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensureState()

	if !st.AtResult() {
		return Recommendation{}, domainerrors.Validationf("funnel is at step %d; answer all four steps first", st.CurrentStep)
	}

	ranked := domain.Rank(st.Candidates, s.library.Profile(), st.Selections, s.now())
	picked, ok := domain.Pick(ranked, s.rng)
	if !ok {
		return Recommendation{}, domainerrors.NoMatch("no candidates survived the funnel")
	}

	s.logger.Info("recommendation picked",
		"book_id", picked.Book.ID,
		"title", picked.Book.Title,
		"score", picked.Score,
		"candidates", len(ranked),
	)
	return Recommendation{
		Book:            picked.Book,
		Score:           picked.Score,
		TotalCandidates: len(ranked),
	}, nil
}

// snapshot builds a FunnelState from the live state. Callers must hold s.mu.
func (s *FunnelService) snapshot() FunnelState {
	st := s.state
	return FunnelState{
		CurrentStep:    int(st.CurrentStep),
		Selections:     st.Selections,
		CandidateCount: st.CandidateCount(),
		AtResult:       st.AtResult(),
	}
}
