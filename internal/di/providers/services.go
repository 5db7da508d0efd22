package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpick/shelfpick-server/internal/config"
	"github.com/shelfpick/shelfpick-server/internal/logger"
	"github.com/shelfpick/shelfpick-server/internal/metadata/openlibrary"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

// ProvideOpenLibraryClient provides the Open Library metadata client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return openlibrary.NewClient(cfg.Enrich.BaseURL, log.Logger), nil
}

// ProvideEnrichmentService provides the backlog enrichment service.
func ProvideEnrichmentService(i do.Injector) (*service.EnrichmentService, error) {
	library := do.MustInvoke[*service.LibraryService](i)
	client := do.MustInvoke[*openlibrary.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEnrichmentService(library, client, log.Logger), nil
}

// ProvideFunnelService provides the decision funnel session controller.
func ProvideFunnelService(i do.Injector) (*service.FunnelService, error) {
	library := do.MustInvoke[*service.LibraryService](i)
	log := do.MustInvoke[*logger.Logger](i)

	// nil picks a time-seeded rand source
	return service.NewFunnelService(library, nil, log.Logger), nil
}
