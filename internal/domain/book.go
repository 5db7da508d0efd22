// Package domain contains the core business entities and decision logic for the ShelfPick recommender.
package domain

import (
	"strings"
	"time"
)

// Book represents one record from the user's reading-history export.
// Fields default to the "unknown" sentinel (0, empty string, zero time)
// when the source data is absent or unparseable.
type Book struct {
	ID              string      `json:"id"`
	Title           string      `json:"title,omitempty"`
	Author          string      `json:"author,omitempty"`
	Pages           int         `json:"pages"`                      // 0 means unknown, not an empty book
	PublicationYear int         `json:"publication_year,omitempty"` // 0 means unknown
	AverageRating   float64     `json:"average_rating,omitempty"`   // 0 means unrated
	UserRating      float64     `json:"user_rating,omitempty"`      // 0 means unrated
	DateRead        time.Time   `json:"date_read,omitzero"`
	DateAdded       time.Time   `json:"date_added,omitzero"`
	Shelves         []string    `json:"shelves,omitempty"`
	ISBN            string      `json:"isbn,omitempty"`
	Enrichment      *Enrichment `json:"enrichment,omitempty"`
}

// Enrichment holds lazily attached external metadata. A non-nil zero value
// is the sentinel for "enrichment attempted and failed"; scoring never
// depends on it.
type Enrichment struct {
	Genres  []string `json:"genres,omitempty"`
	CoverID int64    `json:"cover_id,omitempty"`
}

// Backlog shelf markers, matched case-insensitively as substrings.
var backlogMarkers = []string{"to-read", "want-to-read"}

// IsRead reports whether the book has been completed. Presence of DateRead
// is the sole read/unread discriminator.
func (b *Book) IsRead() bool {
	return !b.DateRead.IsZero()
}

// IsBacklog reports whether the book is an unread want-to-read candidate.
func (b *Book) IsBacklog() bool {
	if b.IsRead() {
		return false
	}
	for _, shelf := range b.Shelves {
		tag := strings.ToLower(shelf)
		for _, marker := range backlogMarkers {
			if strings.Contains(tag, marker) {
				return true
			}
		}
	}
	return false
}

// IsEnriched reports whether enrichment already ran for this book,
// successfully or not.
func (b *Book) IsEnriched() bool {
	return b.Enrichment != nil
}

// Partition splits a book set into read and unread subsets, preserving order.
func Partition(books []Book) (read, unread []Book) {
	for _, b := range books {
		if b.IsRead() {
			read = append(read, b)
		} else {
			unread = append(unread, b)
		}
	}
	return read, unread
}

// Backlog returns the want-to-read candidates from a book set, preserving order.
func Backlog(books []Book) []Book {
	var candidates []Book
	for _, b := range books {
		if b.IsBacklog() {
			candidates = append(candidates, b)
		}
	}
	return candidates
}
