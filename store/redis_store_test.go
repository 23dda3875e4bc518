package store

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := NewRedisStore(&RedisStoreConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStore_SetAndGet(t *testing.T) {
	s := setupRedisStore(t)

	_, ok := s.Get(KeyDarkMode)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyDarkMode, "true"))

	value, ok := s.Get(KeyDarkMode)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestRedisStore_ValuesDoNotExpire(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := NewRedisStore(&RedisStoreConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Set(KeyAITone, "Friendly"))
	assert.Equal(t, int64(0), int64(mr.TTL(KeyAITone)))
}

func TestRedisStore_ConnectFailure(t *testing.T) {
	_, err := NewRedisStore(&RedisStoreConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
