// Package state implements the shared application state container backing
// every dashboard view: search target, navigation, favorites and preferences.
package state

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"skysage.app/models"
	"skysage.app/store"
)

// defaultFavorites seeds the ledger on first run, before anything has been
// persisted.
func defaultFavorites() []models.Location {
	return []models.Location{
		{
			City:        "New York",
			Country:     "United States",
			Condition:   "Partly Cloudy",
			Temperature: "72°",
			Icon:        models.IconCloud,
			IsDefault:   true,
		},
	}
}

// FavoritesLedger is an ordered list of saved locations. A non-empty ledger
// always has exactly one default entry; city identity is case-insensitive.
// Every mutation writes the whole list through to the preference store before
// returning.
type FavoritesLedger struct {
	mu      sync.Mutex
	store   store.Store
	entries []models.Location
}

// NewFavoritesLedger builds a ledger hydrated from the preference store. A
// persisted list replaces the seed wholesale; an unreadable one is discarded.
func NewFavoritesLedger(s store.Store) *FavoritesLedger {
	ledger := &FavoritesLedger{
		store:   s,
		entries: defaultFavorites(),
	}

	if raw, ok := s.Get(store.KeyFavorites); ok {
		var saved []models.Location
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			slog.Warn("Discarding unreadable persisted favorites", "error", err)
		} else {
			ledger.entries = saved
		}
	}
	return ledger
}

// AddNew appends a location unless its city is already present. The first
// entry ever added becomes the default. Reports whether the ledger changed.
func (l *FavoritesLedger) AddNew(loc models.Location) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOfLocked(loc.City) >= 0 {
		return false
	}

	loc.IsDefault = len(l.entries) == 0
	l.entries = append(l.entries, loc)
	l.persistLocked()
	return true
}

// ToggleOff removes the entry matching city, if any, promoting a new default
// when needed. Reports whether an entry was removed.
func (l *FavoritesLedger) ToggleOff(city string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := l.indexOfLocked(city)
	if index < 0 {
		return false
	}

	l.removeLocked(index)
	l.persistLocked()
	return true
}

// Remove deletes the entry at index; out-of-bounds indexes are a no-op. When
// the removed entry was the default, the entry left at position 0 inherits it.
func (l *FavoritesLedger) Remove(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.entries) {
		return
	}

	l.removeLocked(index)
	l.persistLocked()
}

// SetDefault marks the entry at index as the single default; out-of-bounds
// indexes are a no-op.
func (l *FavoritesLedger) SetDefault(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.entries) {
		return
	}

	for i := range l.entries {
		l.entries[i].IsDefault = i == index
	}
	l.persistLocked()
}

// IsFavorite reports whether city is in the ledger, compared case-insensitively.
func (l *FavoritesLedger) IsFavorite(city string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.indexOfLocked(city) >= 0
}

// List returns a copy of the entries in ledger order.
func (l *FavoritesLedger) List() []models.Location {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Location, len(l.entries))
	copy(out, l.entries)
	return out
}

// Default returns the current default entry, if the ledger is non-empty.
func (l *FavoritesLedger) Default() (models.Location, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.IsDefault {
			return entry, true
		}
	}
	return models.Location{}, false
}

func (l *FavoritesLedger) indexOfLocked(city string) int {
	for i, entry := range l.entries {
		if strings.EqualFold(entry.City, city) {
			return i
		}
	}
	return -1
}

func (l *FavoritesLedger) removeLocked(index int) {
	wasDefault := l.entries[index].IsDefault
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	if wasDefault && len(l.entries) > 0 {
		l.entries[0].IsDefault = true
	}
}

func (l *FavoritesLedger) persistLocked() {
	raw, err := json.Marshal(l.entries)
	if err != nil {
		slog.Error("Encode favorites", "error", err)
		return
	}
	if err := l.store.Set(store.KeyFavorites, string(raw)); err != nil {
		slog.Error("Persist favorites", "error", err)
	}
}
