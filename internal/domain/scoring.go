package domain

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Scoring policy constants. The risky-window values are fixed policy, not
// tunable: compatibility tests depend on them exactly.
const (
	familiarBucketBonus  = 1.5
	familiarAuthorBonus  = 0.5
	differentBucketBonus = 1.0
	differentAuthorBonus = 0.5

	oldBacklogBonus = 2.0
	midBacklogBonus = 1.0
	newBacklogBonus = 2.0

	safeRatingFactor = 0.5

	riskyWindowLow  = 3.7
	riskyWindowHigh = 4.1
	riskyAvgFactor  = 1.1
	riskyBase       = 1.5
	riskySlope      = 0.3

	// nearTieWindow bounds the score spread eligible for random selection.
	nearTieWindow = 0.5

	// hoursPerYear approximates a year as 365 days for backlog-age math.
	hoursPerYear = 365 * 24
)

// ScoredBook pairs a candidate with its composite score.
type ScoredBook struct {
	Book  Book    `json:"book"`
	Score float64 `json:"score"`
}

// Score computes a candidate's composite score: the book's average rating
// plus independent bonuses for behaviour alignment, backlog age, and risk
// preference. Bonuses apply only for steps the user has answered.
func Score(book Book, profile Profile, sel Selections, now time.Time) float64 {
	score := book.AverageRating
	score += behaviourBonus(book, profile, sel.Behaviour)
	score += backlogAgeBonus(book, sel.BacklogAge, now)
	score += riskBonus(book, profile, sel.Risk)
	return score
}

// behaviourBonus rewards alignment with (familiar) or divergence from
// (different) the behaviour profile. An empty profile yields no bonus
// regardless of the selection.
func behaviourBonus(book Book, profile Profile, sel Selection) float64 {
	if profile.IsEmpty() {
		return 0
	}

	var bonus float64
	switch sel {
	case SelectFamiliar:
		// Unknown buckets never count as a match: a book with no page
		// count is not "familiar" to a profile that lacks a dominant
		// length, and likewise for eras.
		if book.LengthClass() != LengthUnknown && book.LengthClass() == profile.DominantLength {
			bonus += familiarBucketBonus
		}
		if book.EraBucket() != EraUnknown && book.EraBucket() == profile.DominantEra {
			bonus += familiarBucketBonus
		}
		if profile.HasAuthor(book.Author) {
			bonus += familiarAuthorBonus
		}
	case SelectDifferent:
		if book.LengthClass() != profile.DominantLength {
			bonus += differentBucketBonus
		}
		if book.EraBucket() != profile.DominantEra {
			bonus += differentBucketBonus
		}
		if !profile.HasAuthor(book.Author) {
			bonus += differentAuthorBonus
		}
	}
	return bonus
}

// backlogAgeBonus rewards how long (old) or how recently (new) the book has
// sat on the backlog, measured in 365-day years since DateAdded. A missing
// DateAdded yields no bonus.
func backlogAgeBonus(book Book, sel Selection, now time.Time) float64 {
	if book.DateAdded.IsZero() {
		return 0
	}
	years := now.Sub(book.DateAdded).Hours() / hoursPerYear

	switch sel {
	case SelectOld:
		switch {
		case years >= 3:
			return oldBacklogBonus
		case years >= 1:
			return midBacklogBonus
		}
	case SelectNew:
		switch {
		case years < 1:
			return newBacklogBonus
		case years < 3:
			return midBacklogBonus
		}
	}
	return 0
}

// riskBonus applies the Step 4 risk preference. Safe bets scale with the
// rating itself. Risky bets pay off only inside a narrow window: the
// profile must have a positive average rating, the book's rating must sit
// below avg*1.1, and the rating must fall in [3.7, 4.1]; the bonus shrinks
// as the rating drifts from the profile average.
func riskBonus(book Book, profile Profile, sel Selection) float64 {
	rating := book.AverageRating

	switch sel {
	case SelectSafe:
		return rating * safeRatingFactor
	case SelectRisky:
		if profile.AvgRating <= 0 {
			return 0
		}
		if rating >= profile.AvgRating*riskyAvgFactor {
			return 0
		}
		if rating < riskyWindowLow || rating > riskyWindowHigh {
			return 0
		}
		return riskyBase - riskySlope*math.Abs(rating-profile.AvgRating)
	}
	return 0
}

// Rank scores every candidate and sorts by score descending. Equal scores
// keep the input order, so rankings are deterministic for a given candidate
// ordering.
func Rank(candidates []Book, profile Profile, sel Selections, now time.Time) []ScoredBook {
	scored := make([]ScoredBook, 0, len(candidates))
	for _, b := range candidates {
		scored = append(scored, ScoredBook{
			Book:  b,
			Score: Score(b, profile, sel, now),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// NearTies returns the leading candidates whose score is within the
// near-tie window of the top score. The input must already be ranked.
func NearTies(ranked []ScoredBook) []ScoredBook {
	if len(ranked) == 0 {
		return nil
	}
	cutoff := ranked[0].Score - nearTieWindow
	end := 1
	for end < len(ranked) && ranked[end].Score >= cutoff {
		end++
	}
	return ranked[:end]
}

// Pick selects the recommendation from a ranked candidate list. A single
// clear leader is chosen deterministically; when several candidates score
// within the near-tie window of the top, one is picked uniformly at random
// to keep repeated sessions from going stale. Returns false for an empty
// list.
func Pick(ranked []ScoredBook, rng *rand.Rand) (ScoredBook, bool) {
	ties := NearTies(ranked)
	switch len(ties) {
	case 0:
		return ScoredBook{}, false
	case 1:
		return ties[0], true
	default:
		return ties[rng.Intn(len(ties))], true
	}
}
