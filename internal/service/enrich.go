package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shelfpick/shelfpick-server/internal/domain"
	domainerrors "github.com/shelfpick/shelfpick-server/internal/errors"
	"github.com/shelfpick/shelfpick-server/internal/metadata/openlibrary"
)

// batchSize bounds concurrent metadata lookups. A batch completes before
// the next starts.
const batchSize = 3

// MetadataLookup resolves external metadata for a book.
// This keeps EnrichmentService testable without a live Open Library client.
type MetadataLookup interface {
	Lookup(ctx context.Context, isbn, title, author string) (*openlibrary.Result, error)
}

// EnrichmentReport summarizes one enrichment run.
type EnrichmentReport struct {
	Attempted int `json:"attempted"`
	Enriched  int `json:"enriched"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// EnrichmentService attaches external metadata to backlog candidates.
// Enrichment is strictly additive: scoring and the funnel never block on
// it, and a failed lookup is recorded so the book is not retried.
type EnrichmentService struct {
	library *LibraryService
	client  MetadataLookup
	logger  *slog.Logger

	mu      sync.Mutex // one run at a time
	running bool
}

// NewEnrichmentService creates an enrichment service.
func NewEnrichmentService(library *LibraryService, client MetadataLookup, logger *slog.Logger) *EnrichmentService {
	return &EnrichmentService{
		library: library,
		client:  client,
		logger:  logger,
	}
}

// EnrichBacklog enriches every backlog book that has not been attempted
// yet, at most batchSize lookups in flight. Per-book failures store the
// empty sentinel and the run continues.
func (s *EnrichmentService) EnrichBacklog(ctx context.Context) (EnrichmentReport, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return EnrichmentReport{}, domainerrors.Conflict("an enrichment run is already in progress")
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	backlog := s.library.Backlog()
	var report EnrichmentReport
	var reportMu sync.Mutex

	pending := make([]domain.Book, 0, len(backlog))
	for _, b := range backlog {
		if b.IsEnriched() {
			report.Skipped++
			continue
		}
		pending = append(pending, b)
	}

	for start := 0; start < len(pending); start += batchSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		end := min(start+batchSize, len(pending))
		var wg sync.WaitGroup
		for _, book := range pending[start:end] {
			wg.Add(1)
			go func(book domain.Book) {
				defer wg.Done()
				enrichment := s.enrichOne(ctx, book)

				reportMu.Lock()
				report.Attempted++
				if len(enrichment.Genres) > 0 || enrichment.CoverID != 0 {
					report.Enriched++
				} else {
					report.Failed++
				}
				reportMu.Unlock()

				s.library.MarkEnriched(book.ID, enrichment)
			}(book)
		}
		wg.Wait()
	}

	s.logger.Info("enrichment run complete",
		"attempted", report.Attempted,
		"enriched", report.Enriched,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

// enrichOne looks up one book and always returns a non-nil Enrichment.
// The empty value marks a failed or fruitless attempt.
func (s *EnrichmentService) enrichOne(ctx context.Context, book domain.Book) *domain.Enrichment {
	result, err := s.client.Lookup(ctx, book.ISBN, book.Title, book.Author)
	if err != nil {
		s.logger.Warn("enrichment lookup failed",
			"book_id", book.ID,
			"title", book.Title,
			"error", err,
		)
		return &domain.Enrichment{}
	}
	if result == nil {
		s.logger.Debug("no enrichment data found",
			"book_id", book.ID,
			"title", book.Title,
		)
		return &domain.Enrichment{}
	}
	return &domain.Enrichment{
		Genres:  result.Genres,
		CoverID: result.CoverID,
	}
}
