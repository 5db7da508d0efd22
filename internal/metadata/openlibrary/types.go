package openlibrary

// searchResponse is the top-level payload from /search.json.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

// searchDoc is a single work in a search response. Only the fields used
// for enrichment are decoded.
type searchDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	Subject    []string `json:"subject"`
	CoverID    int64    `json:"cover_i"`
}

// Result holds the enrichment data extracted from a search match.
type Result struct {
	Genres  []string
	CoverID int64
}
