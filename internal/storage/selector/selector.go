// Package selector owns backend choice and the process-wide connection
// lifecycle: one handle, opened once, reused until shutdown.
package selector

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/storage"
	"github.com/Informaticspro/proyecto-factura/internal/storage/boltdb"
	"github.com/Informaticspro/proyecto-factura/internal/storage/sqlite"
	"github.com/Informaticspro/proyecto-factura/pkg/config"
)

var (
	once    sync.Once
	shared  storage.Store
	connErr error
)

// Open picks a backend from the configuration. In auto mode the
// embedded database is preferred; if it fails to open the document
// store takes over, so a broken SQL environment degrades instead of
// crashing the application.
func Open(cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.Open(cfg.SQLitePath(), log)
	case config.BackendBolt:
		return boltdb.Open(cfg.BoltPath(), log)
	default:
		store, err := sqlite.Open(cfg.SQLitePath(), log)
		if err == nil {
			return store, nil
		}
		log.Warn("embedded database unavailable, falling back to document store", zap.Error(err))
		return boltdb.Open(cfg.BoltPath(), log)
	}
}

// Connect is the idempotent process-wide initializer: the first call
// opens the backend, every later call returns the same live handle. On
// failure it hands back storage.Unavailable so reads fail soft and
// mutations fail loud.
func Connect(cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	once.Do(func() {
		shared, connErr = Open(cfg, log)
		if connErr != nil {
			shared = storage.NewUnavailable()
		}
	})
	return shared, connErr
}
