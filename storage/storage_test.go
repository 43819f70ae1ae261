package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delivery-chain/storage"
)

func openSQLite(t *testing.T) *storage.SQLite {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	kv := storage.NewSQLite(db)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func backends(t *testing.T) map[string]storage.KV {
	return map[string]storage.KV{
		"memory": storage.NewMemory(),
		"sqlite": openSQLite(t),
	}
}

func TestKV_GetMissing(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(context.Background(), "nope")
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestKV_SetOverwriteRemove(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, storage.KeyOrders, []byte(`[1]`)))
			require.NoError(t, kv.Set(ctx, storage.KeyOrders, []byte(`[1,2]`)))

			got, err := kv.Get(ctx, storage.KeyOrders)
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, kv.Remove(ctx, storage.KeyOrders))
			_, err = kv.Get(ctx, storage.KeyOrders)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			// removing twice is fine
			assert.NoError(t, kv.Remove(ctx, storage.KeyOrders))
		})
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, "k", []byte("abc")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	type blob struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var dst []blob
			found, err := storage.Load(ctx, kv, storage.KeyLedger, &dst)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, dst)

			in := []blob{{"a", 1}, {"b", 2}}
			require.NoError(t, storage.Save(ctx, kv, storage.KeyLedger, in))

			found, err = storage.Load(ctx, kv, storage.KeyLedger, &dst)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, in, dst)
		})
	}
}

func TestLoad_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeySession, []byte("{not json")))

	var dst map[string]any
	_, err := storage.Load(ctx, kv, storage.KeySession, &dst)
	assert.Error(t, err)
}
