package kvstore

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()

	dsn := fmt.Sprintf("file:kvstore-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	store := NewGormStore(gdb)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func setupBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStores(t *testing.T) {
	backends := map[string]func(*testing.T) Store{
		"gorm":   func(t *testing.T) Store { return setupGormStore(t) },
		"badger": func(t *testing.T) Store { return setupBadgerStore(t) },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			store := open(t)

			_, err := store.Get(KeyPages)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(KeyPages, []byte(`[1]`)))
			got, err := store.Get(KeyPages)
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, store.Set(KeyPages, []byte(`[1,2]`)))
			got, err = store.Get(KeyPages)
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, store.Delete(KeyPages))
			_, err = store.Get(KeyPages)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Delete(KeyPages), "deleting a missing key is a no-op")

			require.NoError(t, store.Set(KeyPages, []byte(`[3]`)))
			got, err = store.Get(KeyPages)
			require.NoError(t, err)
			assert.Equal(t, `[3]`, string(got))
		})
	}
}

func TestStoresRejectBadKeys(t *testing.T) {
	store := setupBadgerStore(t)

	assert.Error(t, store.Set("  ", []byte("x")))
	_, err := store.Get(strings.Repeat("k", maxKeyLength+1))
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "redis"})
	assert.Error(t, err)
}
