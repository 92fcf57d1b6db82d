// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// with defaults declared through `default` struct tags on each section:
//   - Server: HTTP port, API key and the HTTP sync timeout
//   - Database: driver (sqlite or mysql) and connection details
//   - Storage: S3/MinIO credentials used by the object state backend
//   - Log: level and format
//   - Sync: destination root title, concurrency and unsorted handling
//   - State: which backend keeps the SyncState snapshot
//
// Nested keys map to upper-case variables joined by underscores, so
// sync.root_title is read from SYNC_ROOT_TITLE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Sync.RootTitle)
package config
