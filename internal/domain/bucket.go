package domain

// LengthClass represents a page-count category used for profiling, funnel
// filtering, and alignment scoring.
type LengthClass string

// LengthClass constants. LengthUnknown applies to books without a page count.
const (
	LengthQuick    LengthClass = "quick"    // fewer than 300 pages
	LengthModerate LengthClass = "moderate" // 300 to 500 pages inclusive
	LengthLong     LengthClass = "long"     // more than 500 pages
	LengthUnknown  LengthClass = ""
)

// EraBucket represents a publication-year category.
type EraBucket string

// EraBucket constants. EraUnknown applies to books without a publication year.
const (
	EraClassic   EraBucket = "classic"   // before 1950
	EraLate20th  EraBucket = "late20th"  // 1950 to 1999 inclusive
	EraModern    EraBucket = "modern"    // 2000 and later
	EraUnknown   EraBucket = ""
)

// lengthClasses enumerates the known classes in the fixed order used for
// dominant-class tie-breaking.
var lengthClasses = []LengthClass{LengthQuick, LengthModerate, LengthLong}

// eraBuckets enumerates the known buckets in the fixed order used for
// dominant-bucket tie-breaking.
var eraBuckets = []EraBucket{EraClassic, EraLate20th, EraModern}

// ClassifyLength maps a page count to its length class.
// A zero page count means the length is unknown.
func ClassifyLength(pages int) LengthClass {
	switch {
	case pages <= 0:
		return LengthUnknown
	case pages < 300:
		return LengthQuick
	case pages <= 500:
		return LengthModerate
	default:
		return LengthLong
	}
}

// ClassifyEra maps a publication year to its era bucket.
// A zero year means the era is unknown.
func ClassifyEra(year int) EraBucket {
	switch {
	case year <= 0:
		return EraUnknown
	case year < 1950:
		return EraClassic
	case year <= 1999:
		return EraLate20th
	default:
		return EraModern
	}
}

// LengthClass returns the book's length class.
func (b *Book) LengthClass() LengthClass {
	return ClassifyLength(b.Pages)
}

// EraBucket returns the book's era bucket.
func (b *Book) EraBucket() EraBucket {
	return ClassifyEra(b.PublicationYear)
}
