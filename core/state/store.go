package state

import (
	"fmt"

	"bookmark-sync/core/storage"

	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// Deps carries the handles a backend may need. Only the one matching the
// configured backend must be set.
type Deps struct {
	Fs     afero.Fs
	Client storage.Client
	// Bucket is used when Config.Bucket is empty.
	Bucket string
	DB     *gorm.DB
}

// NewStore builds the store selected by cfg.Backend.
func NewStore(cfg Config, deps Deps) (Store, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Backend {
	case BackendFile, "":
		if deps.Fs == nil {
			return nil, fmt.Errorf("file state backend requires a filesystem")
		}
		return NewFileStore(deps.Fs, cfg.Path), nil
	case BackendObject:
		if deps.Client == nil {
			return nil, fmt.Errorf("object state backend requires a storage client")
		}
		bucket := cfg.Bucket
		if bucket == "" {
			bucket = deps.Bucket
		}
		return NewObjectStore(deps.Client, bucket, key), nil
	case BackendDatabase:
		if deps.DB == nil {
			return nil, fmt.Errorf("database state backend requires a database connection")
		}
		return NewDBStore(deps.DB, key), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}
