package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpick/shelfpick-server/internal/domain"
	domainerrors "github.com/shelfpick/shelfpick-server/internal/errors"
)

func newTestFunnel(t *testing.T) *FunnelService {
	t.Helper()
	lib := newTestLibrary(t)
	return NewFunnelService(lib, rand.New(rand.NewSource(1)), testLogger())
}

func advanceToResult(t *testing.T, f *FunnelService) {
	t.Helper()
	steps := []struct {
		step      int
		selection string
	}{
		{1, "any"},
		{2, "familiar"},
		{3, "old"},
		{4, "safe"},
	}
	for _, s := range steps {
		_, err := f.Advance(AdvanceRequest{Step: s.step, Selection: s.selection})
		require.NoError(t, err)
	}
}

func TestFunnelService_StateStartsAtStepOne(t *testing.T) {
	f := newTestFunnel(t)

	state := f.State()
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 2, state.CandidateCount)
	assert.False(t, state.AtResult)
}

func TestFunnelService_FullTraversal(t *testing.T) {
	f := newTestFunnel(t)

	advanceToResult(t, f)

	state := f.State()
	assert.True(t, state.AtResult)
	assert.Equal(t, domain.SelectAny, state.Selections.Time)
	assert.Equal(t, domain.SelectSafe, state.Selections.Risk)
}

func TestFunnelService_AdvanceOutOfOrderIsValidationError(t *testing.T) {
	f := newTestFunnel(t)

	_, err := f.Advance(AdvanceRequest{Step: 3, Selection: "old"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFunnelService_AdvanceMissingSelectionRejected(t *testing.T) {
	f := newTestFunnel(t)

	_, err := f.Advance(AdvanceRequest{Step: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFunnelService_AdvanceInvalidSelection(t *testing.T) {
	f := newTestFunnel(t)

	_, err := f.Advance(AdvanceRequest{Step: 1, Selection: "sideways"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFunnelService_NoCandidatesLeavesStateRecoverable(t *testing.T) {
	lib := NewLibraryService("", testLogger())
	lib.Replace([]domain.Book{
		{ID: "book-1", Title: "Doorstopper", Pages: 900, Shelves: []string{"to-read"}},
	})
	f := NewFunnelService(lib, rand.New(rand.NewSource(1)), testLogger())

	state, err := f.Advance(AdvanceRequest{Step: 1, Selection: "quick"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoCandidates)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 1, state.CandidateCount)

	// The rejected filter left step 1 answerable.
	state, err = f.Advance(AdvanceRequest{Step: 1, Selection: "long"})
	require.NoError(t, err)
	assert.Equal(t, 2, state.CurrentStep)
}

func TestFunnelService_GoBackClearsDownstream(t *testing.T) {
	f := newTestFunnel(t)
	advanceToResult(t, f)

	state := f.GoBack(2)
	assert.Equal(t, 2, state.CurrentStep)
	assert.Equal(t, domain.SelectAny, state.Selections.Time)
	assert.Equal(t, domain.SelectFamiliar, state.Selections.Behaviour)
	assert.Equal(t, domain.SelectNone, state.Selections.BacklogAge)
	assert.Equal(t, domain.SelectNone, state.Selections.Risk)
}

func TestFunnelService_ResetRestoresBacklog(t *testing.T) {
	f := newTestFunnel(t)
	advanceToResult(t, f)

	state := f.Reset()
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 2, state.CandidateCount)
	assert.Equal(t, domain.SelectNone, state.Selections.Time)
}

func TestFunnelService_RecommendBeforeResultRejected(t *testing.T) {
	f := newTestFunnel(t)

	_, err := f.Recommend()
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFunnelService_Recommend(t *testing.T) {
	f := newTestFunnel(t)
	advanceToResult(t, f)

	rec, err := f.Recommend()
	require.NoError(t, err)
	assert.Equal(t, 2, rec.TotalCandidates)
	assert.NotEmpty(t, rec.Book.Title)
	assert.Greater(t, rec.Score, 0.0)
}

func TestFunnelService_EmptyBacklogCannotAdvance(t *testing.T) {
	lib := NewLibraryService("", testLogger())
	lib.Replace(nil)
	f := NewFunnelService(lib, rand.New(rand.NewSource(1)), testLogger())

	state := f.State()
	assert.Equal(t, 0, state.CandidateCount)

	_, err := f.Advance(AdvanceRequest{Step: 1, Selection: "any"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoCandidates)
}

func TestFunnelService_RecommendIsStablePerSeed(t *testing.T) {
	lib := newTestLibrary(t)
	first := NewFunnelService(lib, rand.New(rand.NewSource(7)), testLogger())
	second := NewFunnelService(lib, rand.New(rand.NewSource(7)), testLogger())

	advanceToResult(t, first)
	advanceToResult(t, second)

	a, err := first.Recommend()
	require.NoError(t, err)
	b, err := second.Recommend()
	require.NoError(t, err)
	assert.Equal(t, a.Book.ID, b.Book.ID)
}
