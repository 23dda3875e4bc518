package models

import "math"

// Convert rounds a provider temperature (always fetched in Fahrenheit) into
// the display unit.
func (u TemperatureUnit) Convert(fahrenheit float64) float64 {
	if u == UnitCelsius {
		return math.Round((fahrenheit - 32) * 5 / 9)
	}
	return math.Round(fahrenheit)
}

// Symbol returns the display suffix for the unit.
func (u TemperatureUnit) Symbol() string {
	if u == UnitCelsius {
		return "°C"
	}
	return "°F"
}
