package state

import (
	"log/slog"
	"strconv"
	"sync"

	"skysage.app/models"
	"skysage.app/pkg/validation"
	"skysage.app/store"
)

const defaultSearchCity = "New York"

// AppState is the single per-session state container. It composes the search
// target, the current page, display preferences and the favorites ledger, and
// persists the preference subset through the store on every change.
//
// It is handed to consumers explicitly via constructor injection; there is no
// package-level instance.
type AppState struct {
	mu        sync.Mutex
	store     store.Store
	favorites *FavoritesLedger

	searchCity  string
	currentPage models.Page
	prefs       models.Preferences
}

// Snapshot is a read-only view of the container handed to the views.
type Snapshot struct {
	SearchCity  string             `json:"searchCity"`
	CurrentPage models.Page        `json:"currentPage"`
	Preferences models.Preferences `json:"preferences"`
	Favorites   []models.Location  `json:"favorites"`
}

// New builds the container with defaults, then hydrates it from the store.
// Hydration runs exactly once, here: each persisted key present overwrites
// its default independently, and a persisted favorites list replaces the seed
// wholesale.
func New(s store.Store) *AppState {
	app := &AppState{
		store:       s,
		searchCity:  defaultSearchCity,
		currentPage: models.PageDashboard,
		prefs:       models.DefaultPreferences(),
	}

	if saved, ok := s.Get(store.KeyTemperatureUnit); ok {
		app.prefs.TemperatureUnit = models.ParseTemperatureUnit(saved)
	}
	if saved, ok := s.Get(store.KeyDarkMode); ok {
		app.prefs.DarkMode = saved == "true"
	}
	if saved, ok := s.Get(store.KeyNotifications); ok {
		app.prefs.Notifications = saved != "false"
	}
	if saved, ok := s.Get(store.KeyAITone); ok {
		app.prefs.AITone = models.ParseTone(saved)
	}

	app.favorites = NewFavoritesLedger(s)
	return app
}

// Favorites exposes the ledger; its operations are safe to call directly.
func (a *AppState) Favorites() *FavoritesLedger {
	return a.favorites
}

// Search sets the search target unconditionally. Whether the city resolves to
// real weather data is the caller's concern.
func (a *AppState) Search(city string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.searchCity = city
}

// Navigate switches the current page.
func (a *AppState) Navigate(page models.Page) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.currentPage = page
}

// HandleCityChange sets the search target and leaves the favorites page if it
// was open, since opening a location lands back on the dashboard.
func (a *AppState) HandleCityChange(city string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.handleCityChangeLocked(city)
}

func (a *AppState) handleCityChangeLocked(city string) {
	a.searchCity = city
	if a.currentPage == models.PageFavorites {
		a.currentPage = models.PageDashboard
	}
}

// UpdateSettings applies only the fields present in the update. Each field is
// persisted to the store immediately. DefaultLocation is parsed as
// "City, Country" and only retargets the search city; the country part is
// discarded and the favorite entries are untouched.
func (a *AppState) UpdateSettings(update models.SettingsUpdate) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if update.TemperatureUnit != nil {
		a.prefs.TemperatureUnit = models.ParseTemperatureUnit(*update.TemperatureUnit)
		a.persistLocked(store.KeyTemperatureUnit, string(a.prefs.TemperatureUnit))
	}
	if update.DarkMode != nil {
		a.prefs.DarkMode = *update.DarkMode
		a.persistLocked(store.KeyDarkMode, strconv.FormatBool(a.prefs.DarkMode))
	}
	if update.DefaultLocation != nil && *update.DefaultLocation != "" {
		city, _ := validation.SplitCityCountry(*update.DefaultLocation)
		a.handleCityChangeLocked(city)
	}
	if update.Notifications != nil {
		a.prefs.Notifications = *update.Notifications
		a.persistLocked(store.KeyNotifications, strconv.FormatBool(a.prefs.Notifications))
	}
	if update.AITone != nil {
		a.prefs.AITone = models.ParseTone(*update.AITone)
		a.persistLocked(store.KeyAITone, string(a.prefs.AITone))
	}
}

// SearchCity returns the current search target.
func (a *AppState) SearchCity() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.searchCity
}

// CurrentPage returns the page currently shown.
func (a *AppState) CurrentPage() models.Page {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.currentPage
}

// Preferences returns the current display and assistant settings.
func (a *AppState) Preferences() models.Preferences {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.prefs
}

// AITone returns the current assistant tone.
func (a *AppState) AITone() models.Tone {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.prefs.AITone
}

// TemperatureUnit returns the current display unit.
func (a *AppState) TemperatureUnit() models.TemperatureUnit {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.prefs.TemperatureUnit
}

// Snapshot captures the whole container for the state endpoint.
func (a *AppState) Snapshot() Snapshot {
	a.mu.Lock()
	searchCity := a.searchCity
	page := a.currentPage
	prefs := a.prefs
	a.mu.Unlock()

	return Snapshot{
		SearchCity:  searchCity,
		CurrentPage: page,
		Preferences: prefs,
		Favorites:   a.favorites.List(),
	}
}

func (a *AppState) persistLocked(key, value string) {
	if err := a.store.Set(key, value); err != nil {
		// Settings stay applied in memory even when the write fails; the
		// next successful write repairs the persisted copy.
		slog.Error("Persist setting", "key", key, "error", err)
	}
}
