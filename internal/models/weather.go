package models

// MaxForecastDays caps how many forecast entries a report may carry.
const MaxForecastDays = 5

// MaxSuggestions caps the autocomplete list length.
const MaxSuggestions = 5

// CurrentWeather holds the present conditions for a city. All fields are
// required; a backend response missing any of them is rejected as malformed.
type CurrentWeather struct {
	TemperatureCelsius float64 `json:"temperature_celsius" example:"21.5"`
	HumidityPercent    float64 `json:"humidity_percent" example:"64"`
	WindSpeedKmh       float64 `json:"wind_speed_kmh" example:"12.3"`
	Description        string  `json:"description" example:"scattered clouds"`
}

// ForecastDay is one day of the forecast, ordered as returned by the backend.
type ForecastDay struct {
	Day             string  `json:"day" example:"Tuesday"`
	TempHighCelsius float64 `json:"temp_high_celsius" example:"24.0"`
	TempLowCelsius  float64 `json:"temp_low_celsius" example:"15.5"`
	Description     string  `json:"description" example:"light rain"`
}

type WeatherReport struct {
	Current  CurrentWeather `json:"current"`
	Forecast []ForecastDay  `json:"forecast"`
}

// ClampForecast trims the forecast to MaxForecastDays, preserving order.
func (r *WeatherReport) ClampForecast() {
	if len(r.Forecast) > MaxForecastDays {
		r.Forecast = r.Forecast[:MaxForecastDays]
	}
}
