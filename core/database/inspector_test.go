package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_nodes (id TEXT PRIMARY KEY, title TEXT, position INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_nodes")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "text", colMap["id"])
	assert.Equal(t, "text", colMap["title"])
	assert.Equal(t, "integer", colMap["position"])
	assert.Equal(t, "PRI", columns[0].Key)

	// PRAGMA table_info returns an empty result for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE t (id TEXT, title TEXT)").Error)

	missing, err := MissingColumns(db, "t", []string{"id", "Title", "url"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"url"}, missing)
}
