package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyCreatesCollections(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Apply(db))

	for _, table := range []string{"jobs", "sessions", "clients", "invoices", "settings"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Apply(db))
	require.NoError(t, Apply(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion int
		wantName    string
		wantOK      bool
	}{
		{"000001_create_collections.up.sql", 1, "create_collections", true},
		{"000012_add_indexes.up.sql", 12, "add_indexes", true},
		{"000001_create_collections.down.sql", 0, "", false},
		{"noversion.up.sql", 0, "", false},
		{"abc_bad_prefix.up.sql", 0, "", false},
		{"000000_zero.up.sql", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, ok := parseFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantVersion, version)
				assert.Equal(t, tt.wantName, name)
			}
		})
	}
}
