// Package factory builds the storage backend selected by configuration.
package factory

import (
	"fmt"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/database"
	"github.com/reloadkit/cartgeo/internal/storage"
	gormstorage "github.com/reloadkit/cartgeo/internal/storage/gorm"
	"github.com/reloadkit/cartgeo/internal/storage/memory"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration. The backend
// is not initialised; callers run Init.
func NewBackend(cfg config.StorageConfig, db config.DBConfig, log zerolog.Logger) (storage.Backend, error) {
	switch cfg.Type {
	case config.StoragePostgres, config.StorageSQLite:
		return gormstorage.New(database.NewManager(log), cfg, db), nil
	case config.StorageMemory:
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
