package state

// Config holds configuration for the SyncState store.
type Config struct {
	// Backend selects the store: file, object, database or memory.
	Backend string `mapstructure:"backend" default:"file"`
	// Path is the state file location for the file backend.
	Path string `mapstructure:"path" default:".bookmark-sync/state.json"`
	// Bucket overrides the storage bucket for the object backend.
	Bucket string `mapstructure:"bucket" default:""`
	// Key is the object key or row key the snapshot is stored under.
	Key string `mapstructure:"key" default:"bookmark-sync/state.json"`
}

const (
	BackendFile     = "file"
	BackendObject   = "object"
	BackendDatabase = "database"
	BackendMemory   = "memory"
)
