package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]float64{}))
}

func TestAverage_Values(t *testing.T) {
	assert.InDelta(t, 2.0, Average([]float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 4.25, Average([]float64{4.0, 4.5}), 1e-9)
}

func TestMedian_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
}

func TestMedian_OddLength(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{1, 2, 3, 4, 5}))
	// Order must not matter.
	assert.Equal(t, 3.0, Median([]float64{5, 1, 4, 2, 3}))
}

func TestMedian_EvenLength(t *testing.T) {
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestTopN_RanksByFrequency(t *testing.T) {
	values := []string{"a", "b", "b", "c", "b", "a"}

	top := TopN(values, 2)
	require.Len(t, top, 2)
	assert.Equal(t, FrequencyEntry{Value: "b", Count: 3}, top[0])
	assert.Equal(t, FrequencyEntry{Value: "a", Count: 2}, top[1])
}

func TestTopN_TiesKeepFirstSeenOrder(t *testing.T) {
	// x and y both appear twice; x was seen first and must rank first.
	values := []string{"x", "y", "y", "x"}

	top := TopN(values, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "x", top[0].Value)
	assert.Equal(t, "y", top[1].Value)
}

func TestTopN_SkipsEmptyValues(t *testing.T) {
	top := TopN([]string{"", "a", ""}, 5)
	require.Len(t, top, 1)
	assert.Equal(t, "a", top[0].Value)
}

func TestLengthDistribution_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		pages  int
		bucket string
	}{
		{"short", 250, "short"},
		{"lower medium boundary", 300, "medium"},
		{"upper medium boundary", 500, "medium"},
		{"long", 501, "long"},
		{"upper long boundary", 800, "long"},
		{"epic", 850, "epic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := LengthDistribution([]Book{{Pages: tt.pages}})
			for _, b := range dist {
				if b.Bucket == tt.bucket {
					assert.Equal(t, 1, b.Count)
					assert.Equal(t, 100.0, b.Percentage)
				} else {
					assert.Zero(t, b.Count)
				}
			}
		})
	}
}

func TestLengthDistribution_UnknownPagesExcluded(t *testing.T) {
	books := []Book{{Pages: 0}, {Pages: 250}}

	dist := LengthDistribution(books)
	// The unknown book must not count toward any bucket or the denominator.
	assert.Equal(t, 1, dist[0].Count)
	assert.Equal(t, 100.0, dist[0].Percentage)
}

func TestEraDistribution_Boundaries(t *testing.T) {
	books := []Book{
		{PublicationYear: 1940}, // classic
		{PublicationYear: 1950}, // late20th
		{PublicationYear: 1999}, // late20th
		{PublicationYear: 2000}, // modern
		{PublicationYear: 2020}, // modern
		{PublicationYear: 0},    // unknown, excluded
	}

	dist := EraDistribution(books)
	require.Len(t, dist, 3)
	assert.Equal(t, 1, dist[0].Count)
	assert.Equal(t, 2, dist[1].Count)
	assert.Equal(t, 2, dist[2].Count)
	assert.InDelta(t, 20.0, dist[0].Percentage, 1e-9)
	assert.InDelta(t, 40.0, dist[1].Percentage, 1e-9)
	assert.InDelta(t, 40.0, dist[2].Percentage, 1e-9)
}

func TestEraDistribution_AllUnknown(t *testing.T) {
	dist := EraDistribution([]Book{{}, {}})
	for _, b := range dist {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percentage)
	}
}
