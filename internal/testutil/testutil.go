package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vytor/chessreview/internal/db"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
// Open pins a single connection, so the in-memory database lives until the
// test closes it.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	handle, err := db.Open(":memory:")
	require.NoError(t, err)
	return handle.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
