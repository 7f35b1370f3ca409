package database

import (
	"testing"

	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "tests", "test_results"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO test_results (id, player_id, test_id, left_hand, right_hand, forehand, backhand, created_at, updated_at)
		VALUES ('r1', 'missing', 'missing', 1, 1, 1, 1, 0, 0)`)
	assert.Error(t, err, "insert referencing unknown rows should violate the foreign keys")
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err)
	defer teardown()

	require.NoError(t, migrate(t.Context(), db, "sqlite3"))
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, _, err := InitDB(config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)

	_, _, err = InitDB(config.DatabaseConfig{Driver: "pgx"})
	assert.Error(t, err)
}
