package localstore

import (
	"context"
	"database/sql"
	"testing"

	"gymdash/internal/common"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := NewSQLiteStore(setupDB(t))

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteStore_SetGetRoundTrip(t *testing.T) {
	store := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "gymdash.history.diet", []byte(`[{"id":"a"}]`)))

	got, err := store.Get(ctx, "gymdash.history.diet")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"a"}]`, string(got))
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrorNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestInitDatabase_RunsMigrations(t *testing.T) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLiteStore(db)
	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}
