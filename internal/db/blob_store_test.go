package db

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteBlobStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "inbox.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Write(ctx, Blob{
		"alpha": json.RawMessage(`{"a":1}`),
		"beta":  json.RawMessage(`"two"`),
	}))

	blob, err := store.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(blob["alpha"]))
	require.JSONEq(t, `"two"`, string(blob["beta"]))
}

func TestSQLiteBlobStoreWriteIsShallowMerge(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "inbox.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Write(ctx, Blob{
		"alpha": json.RawMessage(`1`),
		"beta":  json.RawMessage(`2`),
	}))
	require.NoError(t, store.Write(ctx, Blob{
		"beta": json.RawMessage(`3`),
	}))

	blob, err := store.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `1`, string(blob["alpha"]), "untouched key survives the patch")
	require.JSONEq(t, `3`, string(blob["beta"]))
}

func TestSQLiteBlobStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inbox.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, Blob{"alpha": json.RawMessage(`true`)}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	blob, err := reopened.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `true`, string(blob["alpha"]))
}

func TestMemoryBlobStoreMerge(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()

	require.NoError(t, store.Write(ctx, Blob{"alpha": json.RawMessage(`1`)}))
	require.NoError(t, store.Write(ctx, Blob{"beta": json.RawMessage(`2`)}))

	blob, err := store.Read(ctx)
	require.NoError(t, err)
	require.Len(t, blob, 2)

	// Read returns a copy: mutating it must not leak back.
	blob["alpha"] = json.RawMessage(`99`)
	fresh, err := store.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `1`, string(fresh["alpha"]))
}
