package domain

// Profile is a derived, read-only snapshot of a user's dominant reading
// patterns, computed once per session from the completed-book set.
// A zero-value Profile means no personalization is available.
type Profile struct {
	DominantLength LengthClass `json:"dominant_length,omitempty"`
	DominantEra    EraBucket   `json:"dominant_era,omitempty"`
	TopAuthors     []string    `json:"top_authors,omitempty"`
	AvgRating      float64     `json:"avg_rating,omitempty"`
}

// maxTopAuthors bounds the top-author list.
const maxTopAuthors = 5

// IsEmpty reports whether the profile carries no personalization signal.
func (p Profile) IsEmpty() bool {
	return p.DominantLength == LengthUnknown &&
		p.DominantEra == EraUnknown &&
		len(p.TopAuthors) == 0 &&
		p.AvgRating == 0
}

// HasAuthor reports whether name is one of the profile's top authors.
func (p Profile) HasAuthor(name string) bool {
	for _, a := range p.TopAuthors {
		if a == name {
			return true
		}
	}
	return false
}

// BuildProfile derives a behaviour profile from the read-book set.
// Empty input yields the zero-value profile, never an error.
func BuildProfile(readBooks []Book) Profile {
	if len(readBooks) == 0 {
		return Profile{}
	}

	profile := Profile{
		DominantLength: dominantLength(readBooks),
		DominantEra:    dominantEra(readBooks),
		AvgRating:      Average(Ratings(readBooks)),
	}

	for _, e := range TopN(Authors(readBooks), maxTopAuthors) {
		profile.TopAuthors = append(profile.TopAuthors, e.Value)
	}

	return profile
}

// dominantLength returns the length class with the highest count among books
// with a known page count. Ties break by the fixed enumeration order
// quick, moderate, long.
func dominantLength(books []Book) LengthClass {
	counts := make(map[LengthClass]int)
	for _, b := range books {
		if class := b.LengthClass(); class != LengthUnknown {
			counts[class]++
		}
	}

	dominant := LengthUnknown
	best := 0
	for _, class := range lengthClasses {
		if counts[class] > best {
			best = counts[class]
			dominant = class
		}
	}
	return dominant
}

// dominantEra returns the era bucket with the highest count among books with
// a known publication year. Ties break by the fixed enumeration order
// classic, late20th, modern.
func dominantEra(books []Book) EraBucket {
	counts := make(map[EraBucket]int)
	for _, b := range books {
		if era := b.EraBucket(); era != EraUnknown {
			counts[era]++
		}
	}

	dominant := EraUnknown
	best := 0
	for _, era := range eraBuckets {
		if counts[era] > best {
			best = counts[era]
			dominant = era
		}
	}
	return dominant
}
