package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skysage.app/models"
	"skysage.app/store"
)

func newTestLedger(t *testing.T) (*FavoritesLedger, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewFavoritesLedger(s), s
}

func london() models.Location {
	return models.Location{
		City:        "London",
		Country:     "United Kingdom",
		Condition:   "Cloudy",
		Temperature: "62°",
		Icon:        models.IconCloud,
	}
}

// assertSingleDefault checks the ledger invariant: empty, or exactly one
// default entry.
func assertSingleDefault(t *testing.T, ledger *FavoritesLedger) {
	t.Helper()
	entries := ledger.List()
	if len(entries) == 0 {
		return
	}
	defaults := 0
	for _, entry := range entries {
		if entry.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults, "expected exactly one default entry")
}

func TestFavoritesLedger_SeedsDefaultEntry(t *testing.T) {
	ledger, _ := newTestLedger(t)

	entries := ledger.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "New York", entries[0].City)
	assert.True(t, entries[0].IsDefault)
}

func TestFavoritesLedger_AddNew(t *testing.T) {
	ledger, _ := newTestLedger(t)

	added := ledger.AddNew(london())
	assert.True(t, added)

	entries := ledger.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "New York", entries[0].City)
	assert.True(t, entries[0].IsDefault, "New York should still be default")
	assert.Equal(t, "London", entries[1].City)
	assert.False(t, entries[1].IsDefault)
}

func TestFavoritesLedger_AddNew_NoDuplicates(t *testing.T) {
	ledger, _ := newTestLedger(t)

	assert.True(t, ledger.AddNew(london()))
	assert.False(t, ledger.AddNew(london()))

	// Identity is case-insensitive.
	lower := london()
	lower.City = "london"
	assert.False(t, ledger.AddNew(lower))

	matches := 0
	for _, entry := range ledger.List() {
		if entry.City == "London" {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestFavoritesLedger_FirstEntryBecomesDefault(t *testing.T) {
	ledger, _ := newTestLedger(t)

	// Empty the ledger, then add; the new entry must be default.
	ledger.Remove(0)
	require.Empty(t, ledger.List())

	requested := london()
	requested.IsDefault = false
	assert.True(t, ledger.AddNew(requested))

	entries := ledger.List()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDefault)
}

func TestFavoritesLedger_ToggleOff(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ledger.AddNew(london())

	assert.True(t, ledger.ToggleOff("LONDON"))
	assert.False(t, ledger.IsFavorite("London"))

	// Absent city: no-op, ledger unchanged.
	before := ledger.List()
	assert.False(t, ledger.ToggleOff("Oslo"))
	assert.Equal(t, before, ledger.List())
}

func TestFavoritesLedger_RemoveDefaultPromotesFirst(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ledger.AddNew(london())

	// Scenario: removing New York (the default) leaves London as default.
	ledger.Remove(0)

	entries := ledger.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "London", entries[0].City)
	assert.True(t, entries[0].IsDefault)
}

func TestFavoritesLedger_RemoveOutOfBounds(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Remove(-1)
	ledger.Remove(5)
	assert.Len(t, ledger.List(), 1)
}

func TestFavoritesLedger_SetDefault(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ledger.AddNew(london())

	ledger.SetDefault(1)

	entries := ledger.List()
	assert.False(t, entries[0].IsDefault)
	assert.True(t, entries[1].IsDefault)

	// Out-of-bounds index is a no-op.
	ledger.SetDefault(7)
	entries = ledger.List()
	assert.True(t, entries[1].IsDefault)
}

func TestFavoritesLedger_InvariantAcrossOperations(t *testing.T) {
	ledger, _ := newTestLedger(t)

	cities := []models.Location{
		london(),
		{City: "Tokyo", Country: "Japan", Icon: models.IconSun},
		{City: "Paris", Country: "France", Icon: models.IconRain},
	}
	for _, loc := range cities {
		ledger.AddNew(loc)
		assertSingleDefault(t, ledger)
	}

	ledger.SetDefault(2)
	assertSingleDefault(t, ledger)

	ledger.Remove(2)
	assertSingleDefault(t, ledger)

	ledger.ToggleOff("Paris")
	assertSingleDefault(t, ledger)

	ledger.Remove(0)
	assertSingleDefault(t, ledger)

	ledger.Remove(0)
	assertSingleDefault(t, ledger)
	assert.Empty(t, ledger.List())
}

func TestFavoritesLedger_PersistenceRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := NewFavoritesLedger(s)
	ledger.AddNew(london())
	ledger.SetDefault(1)

	// The persisted copy must match the in-memory list after every write.
	raw, ok := s.Get(store.KeyFavorites)
	require.True(t, ok)
	var persisted []models.Location
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, ledger.List(), persisted)

	// Rehydrating from the same store reproduces the list wholesale.
	rehydrated := NewFavoritesLedger(s)
	assert.Equal(t, ledger.List(), rehydrated.List())
}

func TestFavoritesLedger_DiscardsCorruptPersistedList(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(store.KeyFavorites, "{not json"))

	ledger := NewFavoritesLedger(s)
	entries := ledger.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "New York", entries[0].City)
}

func TestFavoritesLedger_Default(t *testing.T) {
	ledger, _ := newTestLedger(t)

	def, ok := ledger.Default()
	require.True(t, ok)
	assert.Equal(t, "New York", def.City)

	ledger.Remove(0)
	_, ok = ledger.Default()
	assert.False(t, ok)
}
