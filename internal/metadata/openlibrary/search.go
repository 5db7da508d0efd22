package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

const maxGenres = 6

// Lookup searches Open Library for a book and returns its subjects and
// cover identifier. The ISBN is tried first; when it is empty the title
// and author are used as a free-text query. A nil result with a nil error
// means the search completed but found nothing usable.
func (c *Client) Lookup(ctx context.Context, isbn, title, author string) (*Result, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	if isbn != "" {
		params.Set("isbn", isbn)
	} else {
		params.Set("title", title)
		if author != "" {
			params.Set("author", author)
		}
	}
	params.Set("limit", "5")
	params.Set("fields", "title,author_name,subject,cover_i")

	searchURL := c.baseURL + "/search.json?" + params.Encode()

	c.logger.Debug("searching Open Library",
		"isbn", isbn,
		"title", title,
		"url", searchURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Open Library search results",
		"isbn", isbn,
		"title", title,
		"count", searchResp.NumFound,
	)

	for i := range searchResp.Docs {
		doc := &searchResp.Docs[i]
		if len(doc.Subject) == 0 && doc.CoverID == 0 {
			continue
		}
		genres := doc.Subject
		if len(genres) > maxGenres {
			genres = genres[:maxGenres]
		}
		return &Result{
			Genres:  append([]string(nil), genres...),
			CoverID: doc.CoverID,
		}, nil
	}

	return nil, nil
}
