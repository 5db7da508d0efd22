package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOn(year int) time.Time {
	return time.Date(year, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestBuildProfile_EmptyInput(t *testing.T) {
	profile := BuildProfile(nil)

	assert.True(t, profile.IsEmpty())
	assert.Equal(t, LengthUnknown, profile.DominantLength)
	assert.Equal(t, EraUnknown, profile.DominantEra)
	assert.Empty(t, profile.TopAuthors)
	assert.Zero(t, profile.AvgRating)
}

func TestBuildProfile_DominantLength(t *testing.T) {
	books := []Book{
		{Pages: 200, DateRead: readOn(2023)},
		{Pages: 250, DateRead: readOn(2023)},
		{Pages: 400, DateRead: readOn(2023)},
		{Pages: 0, DateRead: readOn(2023)}, // unknown pages excluded
	}

	profile := BuildProfile(books)
	assert.Equal(t, LengthQuick, profile.DominantLength)
}

func TestBuildProfile_DominantLengthTie(t *testing.T) {
	// One quick, one long: the fixed enumeration order quick, moderate,
	// long breaks the tie in favor of quick.
	books := []Book{
		{Pages: 150, DateRead: readOn(2023)},
		{Pages: 600, DateRead: readOn(2023)},
	}

	profile := BuildProfile(books)
	assert.Equal(t, LengthQuick, profile.DominantLength)
}

func TestBuildProfile_DominantEraTie(t *testing.T) {
	// classic and modern tie; classic wins by enumeration order.
	books := []Book{
		{PublicationYear: 1930, DateRead: readOn(2023)},
		{PublicationYear: 2015, DateRead: readOn(2023)},
	}

	profile := BuildProfile(books)
	assert.Equal(t, EraClassic, profile.DominantEra)
}

func TestBuildProfile_TopAuthors(t *testing.T) {
	books := []Book{
		{Author: "Author A", DateRead: readOn(2022)},
		{Author: "Author B", DateRead: readOn(2023)},
		{Author: "Author A", DateRead: readOn(2024)},
	}

	profile := BuildProfile(books)
	require.NotEmpty(t, profile.TopAuthors)
	assert.Contains(t, profile.TopAuthors, "Author A")
	assert.Equal(t, "Author A", profile.TopAuthors[0])
}

func TestBuildProfile_TopAuthorsTruncatedToFive(t *testing.T) {
	var books []Book
	for _, a := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		books = append(books, Book{Author: a, DateRead: readOn(2023)})
	}

	profile := BuildProfile(books)
	assert.Len(t, profile.TopAuthors, 5)
	// Equal frequencies keep first-seen order.
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, profile.TopAuthors)
}

func TestBuildProfile_AvgRatingIgnoresUnrated(t *testing.T) {
	books := []Book{
		{AverageRating: 4.0, DateRead: readOn(2023)},
		{AverageRating: 0, DateRead: readOn(2023)}, // unrated
		{AverageRating: 3.0, DateRead: readOn(2023)},
	}

	profile := BuildProfile(books)
	assert.InDelta(t, 3.5, profile.AvgRating, 1e-9)
}

func TestProfile_HasAuthor(t *testing.T) {
	profile := Profile{TopAuthors: []string{"Author A"}}

	assert.True(t, profile.HasAuthor("Author A"))
	assert.False(t, profile.HasAuthor("Author B"))
}
