// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a local SQLite file based on
// the application's configuration. The destination bookmark tree and, when
// configured, the SyncState row both live in this database.
//
// # Connect
//
// Connect picks the dialector from Config.Driver and verifies the connection
// with a ping bounded by Config.TimeoutSeconds. SQLite connections are limited
// to one open connection so that ":memory:" databases behave as one database.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for either dialect. The destination
// store uses it to verify its table after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "bookmark_nodes")
package database
