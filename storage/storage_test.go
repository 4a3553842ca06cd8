package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/programme-lv/writing/conf"
	"github.com/programme-lv/writing/writing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), &conf.Config{
		Storage: conf.Storage{Driver: conf.DriverMemory},
	})
	require.NoError(t, err)
	defer closeFn()
	require.NoError(t, store.Ping(context.Background()))
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	store, closeFn, err := Open(ctx, &conf.Config{
		Storage: conf.Storage{
			Driver:     conf.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "w.db"),
		},
	})
	require.NoError(t, err)
	defer closeFn()

	s, err := domain.NewWritingSubm("u1", "easy", "t", "p", "a b c")
	require.NoError(t, err)
	require.NoError(t, store.StoreSubm(ctx, s))

	got, err := store.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].WordCount)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &conf.Config{
		Storage: conf.Storage{Driver: "mongo"},
	})
	require.Error(t, err)
}
