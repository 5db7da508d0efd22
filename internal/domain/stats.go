package domain

import "sort"

// Average returns the arithmetic mean of values, or 0 for empty input.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the median of values, or 0 for empty input.
// Even-length inputs average the two middle values after ascending sort.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// FrequencyEntry is one ranked value in a TopN result.
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopN returns the n most frequent non-empty values, ranked by descending
// count. Equal counts keep first-seen order, so results are deterministic
// for a given input ordering.
func TopN(values []string, n int) []FrequencyEntry {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	entries := make([]FrequencyEntry, 0, len(order))
	for _, v := range order {
		entries = append(entries, FrequencyEntry{Value: v, Count: counts[v]})
	}
	// SliceStable keeps first-seen order among equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// DistributionBucket is one slice of a bucketed distribution.
type DistributionBucket struct {
	Bucket     string  `json:"bucket"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // 0-100, over valid measurements only
}

// LengthDistribution buckets books by page count for display:
// short <300, medium 300-500, long 501-800, epic >800.
// Books without a page count are excluded from counts and the denominator.
func LengthDistribution(books []Book) []DistributionBucket {
	buckets := []DistributionBucket{
		{Bucket: "short"},
		{Bucket: "medium"},
		{Bucket: "long"},
		{Bucket: "epic"},
	}
	valid := 0
	for _, b := range books {
		if b.Pages <= 0 {
			continue
		}
		valid++
		switch {
		case b.Pages < 300:
			buckets[0].Count++
		case b.Pages <= 500:
			// Boundary at exactly 500 belongs to medium.
			buckets[1].Count++
		case b.Pages <= 800:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}
	fillPercentages(buckets, valid)
	return buckets
}

// EraDistribution buckets books by publication year for display:
// classic <1950, late20th 1950-1999, modern >=2000.
// Books without a year are excluded from counts and the denominator.
func EraDistribution(books []Book) []DistributionBucket {
	buckets := []DistributionBucket{
		{Bucket: string(EraClassic)},
		{Bucket: string(EraLate20th)},
		{Bucket: string(EraModern)},
	}
	valid := 0
	for _, b := range books {
		switch b.EraBucket() {
		case EraClassic:
			buckets[0].Count++
		case EraLate20th:
			buckets[1].Count++
		case EraModern:
			buckets[2].Count++
		default:
			continue
		}
		valid++
	}
	fillPercentages(buckets, valid)
	return buckets
}

func fillPercentages(buckets []DistributionBucket, valid int) {
	if valid == 0 {
		return
	}
	for i := range buckets {
		buckets[i].Percentage = float64(buckets[i].Count) / float64(valid) * 100
	}
}

// Pages collects the known page counts from a book set as floats,
// skipping unknown (zero) values.
func Pages(books []Book) []float64 {
	var pages []float64
	for _, b := range books {
		if b.Pages > 0 {
			pages = append(pages, float64(b.Pages))
		}
	}
	return pages
}

// Ratings collects the non-zero average ratings from a book set.
func Ratings(books []Book) []float64 {
	var ratings []float64
	for _, b := range books {
		if b.AverageRating > 0 {
			ratings = append(ratings, b.AverageRating)
		}
	}
	return ratings
}

// Authors collects the author of each book, skipping blanks.
func Authors(books []Book) []string {
	var authors []string
	for _, b := range books {
		if b.Author != "" {
			authors = append(authors, b.Author)
		}
	}
	return authors
}
