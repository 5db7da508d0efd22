package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/shelfpick/shelfpick-server/internal/domain"
	"github.com/shelfpick/shelfpick-server/internal/ingest"
)

// LibraryStats is the aggregated overview of the loaded library.
type LibraryStats struct {
	TotalBooks         int                         `json:"total_books"`
	ReadBooks          int                         `json:"read_books"`
	BacklogBooks       int                         `json:"backlog_books"`
	AvgPages           float64                     `json:"avg_pages"`
	MedianPages        float64                     `json:"median_pages"`
	AvgRating          float64                     `json:"avg_rating"`
	TopAuthors         []domain.FrequencyEntry     `json:"top_authors,omitempty"`
	LengthDistribution []domain.DistributionBucket `json:"length_distribution,omitempty"`
	EraDistribution    []domain.DistributionBucket `json:"era_distribution,omitempty"`
}

// LibraryService owns the in-memory book set loaded from the reading-history
// export. Reloads swap the whole snapshot under the lock; readers always see
// a consistent library, profile, and partition together.
type LibraryService struct {
	exportPath string
	logger     *slog.Logger

	mu      sync.RWMutex
	books   []domain.Book
	read    []domain.Book
	backlog []domain.Book
	profile domain.Profile
}

// NewLibraryService creates a library service for the given export file.
// The library is empty until Load is called.
func NewLibraryService(exportPath string, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		exportPath: exportPath,
		logger:     logger,
	}
}

// Load reads the export file and replaces the current library.
func (s *LibraryService) Load() error {
	books, err := ingest.Load(s.exportPath)
	if err != nil {
		return fmt.Errorf("load library: %w", err)
	}
	s.Replace(books)
	s.logger.Info("library loaded",
		"path", s.exportPath,
		"total", len(books),
	)
	return nil
}

// Replace swaps in a new book set, repartitioning and rebuilding the
// behaviour profile. The profile is derived once here, not per request.
func (s *LibraryService) Replace(books []domain.Book) {
	read, _ := domain.Partition(books)
	backlog := domain.Backlog(books)
	profile := domain.BuildProfile(read)

	s.mu.Lock()
	s.books = books
	s.read = read
	s.backlog = backlog
	s.profile = profile
	s.mu.Unlock()
}

// Reload re-ingests the export file. Used by the file watcher; a failed
// reload keeps the previous snapshot.
func (s *LibraryService) Reload() {
	if err := s.Load(); err != nil {
		s.logger.Error("library reload failed, keeping previous snapshot", "error", err)
	}
}

// Books returns a copy of the full loaded set. Copies keep callers
// isolated from in-place enrichment updates.
func (s *LibraryService) Books() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Book(nil), s.books...)
}

// Backlog returns a copy of the want-to-read candidates in catalog order.
func (s *LibraryService) Backlog() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Book(nil), s.backlog...)
}

// Profile returns the behaviour profile derived from the read set.
func (s *LibraryService) Profile() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Stats aggregates the overview metrics for the loaded library.
func (s *LibraryService) Stats() LibraryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := domain.Pages(s.read)
	return LibraryStats{
		TotalBooks:         len(s.books),
		ReadBooks:          len(s.read),
		BacklogBooks:       len(s.backlog),
		AvgPages:           domain.Average(pages),
		MedianPages:        domain.Median(pages),
		AvgRating:          domain.Average(domain.Ratings(s.read)),
		TopAuthors:         domain.TopN(domain.Authors(s.read), 5),
		LengthDistribution: domain.LengthDistribution(s.read),
		EraDistribution:    domain.EraDistribution(s.read),
	}
}

// MarkEnriched attaches enrichment data to the book with the given ID in
// every snapshot slice that holds it.
func (s *LibraryService) MarkEnriched(bookID string, enrichment *domain.Enrichment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range [][]domain.Book{s.books, s.read, s.backlog} {
		for i := range set {
			if set[i].ID == bookID {
				set[i].Enrichment = enrichment
			}
		}
	}
}
