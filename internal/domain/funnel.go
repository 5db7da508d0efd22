package domain

import (
	"errors"
	"fmt"
)

// Step identifies one stage of the decision funnel.
//
// The funnel progresses Step1 through Step4, then lands in the terminal
// StepResult state. Every step before StepResult also supports a backward
// transition to any earlier step.
type Step int

// Funnel steps in traversal order.
const (
	StepTimeInvestment Step = iota + 1 // page-count filter
	StepBehaviour                      // familiar vs different
	StepBacklogAge                     // old vs new backlog entries
	StepRisk                           // safe vs risky bet
	StepResult                         // terminal: ready to recommend
)

// String returns a short name for the step.
func (s Step) String() string {
	switch s {
	case StepTimeInvestment:
		return "time-investment"
	case StepBehaviour:
		return "behaviour"
	case StepBacklogAge:
		return "backlog-age"
	case StepRisk:
		return "risk"
	case StepResult:
		return "result"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Selection is one user choice at a funnel step. Each step accepts a closed
// set of selections, validated on Advance.
type Selection string

// Valid selections per step.
const (
	SelectQuick    Selection = "quick"
	SelectModerate Selection = "moderate"
	SelectLong     Selection = "long"
	SelectAny      Selection = "any"

	SelectFamiliar  Selection = "familiar"
	SelectDifferent Selection = "different"

	SelectOld Selection = "old"
	SelectNew Selection = "new"

	SelectSafe  Selection = "safe"
	SelectRisky Selection = "risky"

	// SelectNone is the empty selection, recorded before a step is chosen.
	SelectNone Selection = ""
)

// stepSelections lists the allowed selections for each forward step.
var stepSelections = map[Step][]Selection{
	StepTimeInvestment: {SelectQuick, SelectModerate, SelectLong, SelectAny},
	StepBehaviour:      {SelectFamiliar, SelectDifferent},
	StepBacklogAge:     {SelectOld, SelectNew},
	StepRisk:           {SelectSafe, SelectRisky},
}

// ValidSelection reports whether sel is an allowed choice for step.
func ValidSelection(step Step, sel Selection) bool {
	for _, s := range stepSelections[step] {
		if s == sel {
			return true
		}
	}
	return false
}

// Selections records the user's choice at each funnel step.
// SelectNone means the step has not been answered.
type Selections struct {
	Time       Selection `json:"time,omitempty"`
	Behaviour  Selection `json:"behaviour,omitempty"`
	BacklogAge Selection `json:"backlog_age,omitempty"`
	Risk       Selection `json:"risk,omitempty"`
}

// ErrNoCandidates signals that a Step 1 filter would leave the candidate set
// empty. The transition is rejected and the caller should offer a
// relax-constraint recovery (GoBack to Step 1).
var ErrNoCandidates = errors.New("no candidates match the selected filter")

// ErrStepOrder signals a forward transition attempted out of order.
var ErrStepOrder = errors.New("step does not match the funnel's current step")

// ErrInvalidSelection signals a selection outside the step's closed set.
var ErrInvalidSelection = errors.New("invalid selection for step")

// DecisionState is the mutable state of one funnel traversal. It is owned by
// a single session controller and accessed single-threaded; it is recreated
// from scratch on reset, never partially reused.
type DecisionState struct {
	CurrentStep Step       `json:"current_step"`
	Selections  Selections `json:"selections"`
	Candidates  []Book     `json:"candidates"`

	// allBooks is the original full backlog, kept to restore Candidates on
	// backtracking. Never mutated after construction.
	allBooks []Book
}

// NewDecisionState starts a funnel traversal over the given backlog.
// An empty backlog is a valid state: the funnel simply has no viable
// candidates from the outset.
func NewDecisionState(backlog []Book) *DecisionState {
	return &DecisionState{
		CurrentStep: StepTimeInvestment,
		Candidates:  append([]Book(nil), backlog...),
		allBooks:    backlog,
	}
}

// CandidateCount returns the size of the live candidate set.
func (d *DecisionState) CandidateCount() int {
	return len(d.Candidates)
}

// AtResult reports whether the funnel has reached the terminal state.
func (d *DecisionState) AtResult() bool {
	return d.CurrentStep == StepResult
}

// Advance applies the user's selection for the given step and moves the
// funnel forward. The step must be the funnel's current step and the
// selection must belong to that step's closed set.
//
// A Step 1 selection filters the candidate set; if the filter would empty
// it, Advance returns ErrNoCandidates and the state is left unchanged so
// the caller can offer a relax-constraint recovery.
func (d *DecisionState) Advance(step Step, sel Selection) error {
	if step != d.CurrentStep {
		return fmt.Errorf("%w: got %s, at %s", ErrStepOrder, step, d.CurrentStep)
	}
	if !ValidSelection(step, sel) {
		return fmt.Errorf("%w: %q at %s", ErrInvalidSelection, sel, step)
	}

	switch step {
	case StepTimeInvestment:
		filtered := FilterByLength(d.Candidates, sel)
		if len(filtered) == 0 {
			return ErrNoCandidates
		}
		d.Candidates = filtered
		d.Selections.Time = sel
		d.CurrentStep = StepBehaviour

	case StepBehaviour:
		d.Selections.Behaviour = sel
		d.CurrentStep = StepBacklogAge

	case StepBacklogAge:
		d.Selections.BacklogAge = sel
		d.CurrentStep = StepRisk

	case StepRisk:
		d.Selections.Risk = sel
		d.CurrentStep = StepResult
	}

	return nil
}

// GoBack returns the funnel to an earlier step, clearing every selection
// strictly after the target. Going back to Step 1 also restores the
// candidate set to the full backlog and clears the Step 1 selection, so the
// filter can be chosen again. GoBack always succeeds; targets at or after
// the current step are a no-op.
func (d *DecisionState) GoBack(target Step) {
	if target >= d.CurrentStep || target < StepTimeInvestment {
		return
	}

	// Selections belonging to steps strictly after the target are cleared.
	if target < StepBehaviour {
		d.Selections.Behaviour = SelectNone
	}
	if target < StepBacklogAge {
		d.Selections.BacklogAge = SelectNone
	}
	if target < StepRisk {
		d.Selections.Risk = SelectNone
	}

	// Returning to Step 1 restarts filtering entirely: restore the full
	// backlog and clear the Step 1 selection as well.
	if target == StepTimeInvestment {
		d.Selections.Time = SelectNone
		d.Candidates = append([]Book(nil), d.allBooks...)
	}

	d.CurrentStep = target
}

// Reset reinitializes the traversal as if freshly constructed.
// The behaviour profile lives outside the decision state and is untouched.
func (d *DecisionState) Reset() {
	d.CurrentStep = StepTimeInvestment
	d.Selections = Selections{}
	d.Candidates = append([]Book(nil), d.allBooks...)
}

// FilterByLength narrows books by the Step 1 time-investment selection.
// Books with an unknown page count pass only under SelectAny. The input
// order is preserved; SelectAny (or an empty selection) returns the input
// unchanged.
func FilterByLength(books []Book, sel Selection) []Book {
	if sel == SelectAny || sel == SelectNone {
		return books
	}

	var filtered []Book
	for _, b := range books {
		if b.Pages <= 0 {
			continue
		}
		switch sel {
		case SelectQuick:
			if b.Pages < 300 {
				filtered = append(filtered, b)
			}
		case SelectModerate:
			if b.Pages >= 300 && b.Pages <= 500 {
				filtered = append(filtered, b)
			}
		case SelectLong:
			if b.Pages > 500 {
				filtered = append(filtered, b)
			}
		}
	}
	return filtered
}
