package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok := s.Get(KeyDarkMode)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyDarkMode, "true"))

	value, ok := s.Get(KeyDarkMode)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyAITone, "Professional"))
	require.NoError(t, s.Set(KeyNotifications, "false"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	value, ok := reopened.Get(KeyAITone)
	require.True(t, ok)
	assert.Equal(t, "Professional", value)
	value, ok = reopened.Get(KeyNotifications)
	require.True(t, ok)
	assert.Equal(t, "false", value)
}

func TestFileStore_WritesValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyTemperatureUnit, "celsius"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var data map[string]string
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, "celsius", data[KeyTemperatureUnit])
}

func TestFileStore_LeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyDarkMode, "true"))
	require.NoError(t, s.Set(KeyDarkMode, "false"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.json", entries[0].Name())
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStore_MissingFileIsEmptyStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	_, ok := s.Get(KeyFavorites)
	assert.False(t, ok)
}
