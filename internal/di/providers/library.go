package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shelfpick/shelfpick-server/internal/config"
	"github.com/shelfpick/shelfpick-server/internal/ingest"
	"github.com/shelfpick/shelfpick-server/internal/logger"
	"github.com/shelfpick/shelfpick-server/internal/service"
)

// ProvideLibraryService provides the library service with the export loaded.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	library := service.NewLibraryService(cfg.Library.ExportPath, log.Logger)
	if err := library.Load(); err != nil {
		return nil, err
	}
	return library, nil
}

// ExportWatcherHandle wraps the export watcher with shutdown capability.
// A nil Watcher means watching is disabled.
type ExportWatcherHandle struct {
	*ingest.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ExportWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Close()
}

// ProvideExportWatcher provides the CSV reload watcher.
func ProvideExportWatcher(i do.Injector) (*ExportWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	library := do.MustInvoke[*service.LibraryService](i)

	if !cfg.Library.WatchExport {
		return &ExportWatcherHandle{}, nil
	}

	w, err := ingest.NewWatcher(cfg.Library.ExportPath, library.Reload, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	log.Info("Watching export file", "path", cfg.Library.ExportPath)

	return &ExportWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}
