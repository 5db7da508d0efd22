// Package di provides dependency injection configuration for the ShelfPick server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shelfpick/shelfpick-server/internal/config"
	"github.com/shelfpick/shelfpick-server/internal/di/providers"
	"github.com/shelfpick/shelfpick-server/internal/logger"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Library layer
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideExportWatcher)

	// Metadata layer
	do.Provide(injector, providers.ProvideOpenLibraryClient)
	do.Provide(injector, providers.ProvideEnrichmentService)

	// Funnel
	do.Provide(injector, providers.ProvideFunnelService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*providers.ExportWatcherHandle](injector)
	_ = do.MustInvoke[*service.FunnelService](injector)
	_ = do.MustInvoke[*service.EnrichmentService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	return nil
}
