// Package kvtest holds a compliance suite shared by every kv.Store implementation.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/faq-catalog/internal/kv"
)

// Run exercises a kv.Store. makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		s := makeStore(t)
		v, ok, err := s.Get(ctx, "entries")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("put replaces value", func(t *testing.T) {
		s := makeStore(t)
		require.NoError(t, s.Put(ctx, "tags", []byte(`[]`)))
		require.NoError(t, s.Put(ctx, "tags", []byte(`[{"id":"t1"}]`)))

		v, ok, err := s.Get(ctx, "tags")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"id":"t1"}]`, string(v))
	})

	t.Run("put many", func(t *testing.T) {
		s := makeStore(t)
		require.NoError(t, s.PutMany(ctx, map[string][]byte{
			"entries":   []byte(`[]`),
			"recentIds": []byte(`["a"]`),
		}))

		records, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "entries", records[0].Key)
		assert.Equal(t, "recentIds", records[1].Key)
		assert.Equal(t, 5, records[1].Size)
		assert.False(t, records[1].UpdatedAt.IsZero())
	})

	t.Run("utf8 round trip", func(t *testing.T) {
		s := makeStore(t)
		val := []byte(`["Tình huống đặc biệt","Lộ trình môn học"]`)
		require.NoError(t, s.Put(ctx, "contentTypes", val))
		v, _, err := s.Get(ctx, "contentTypes")
		require.NoError(t, err)
		assert.Equal(t, val, v)
	})
}
