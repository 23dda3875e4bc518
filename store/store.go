// Package store provides the durable key-value preference store backing the
// application state container. Values are plain strings; absent keys are not
// an error and callers supply their own defaults.
package store

// Persisted preference keys. The names are part of the settings file format;
// renaming one orphans the previously saved value.
const (
	KeyTemperatureUnit = "temperatureUnit"
	KeyDarkMode        = "darkMode"
	KeyNotifications   = "notifications"
	KeyAITone          = "aiTone"
	KeyFavorites       = "weatherFavorites"
)

// Store is the preference store contract. Get reports absence through its
// second return; Set surfaces storage failures as a generic error.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
