package render

import (
	"strings"

	"github.com/Otigef/weather-dashboard/internal/models"
)

// Condition is the visual bucket a weather description falls into.
type Condition string

const (
	ConditionClear   Condition = "clear"
	ConditionClouds  Condition = "clouds"
	ConditionRain    Condition = "rain"
	ConditionStorm   Condition = "storm"
	ConditionSnow    Condition = "snow"
	ConditionMist    Condition = "mist"
	ConditionDefault Condition = "default"
)

// Alert codes derived from threshold rules.
const (
	AlertHeat  = "heat"
	AlertCold  = "cold"
	AlertWind  = "wind"
	AlertStorm = "storm"
)

var conditionIcons = map[Condition]string{
	ConditionClear:   "☀️",
	ConditionClouds:  "☁️",
	ConditionRain:    "🌧️",
	ConditionStorm:   "⛈️",
	ConditionSnow:    "❄️",
	ConditionMist:    "🌫️",
	ConditionDefault: "🌡️",
}

// CSS-style class names front-ends hang the visuals on.
var conditionBackgrounds = map[Condition]string{
	ConditionClear:   "bg-clear",
	ConditionClouds:  "bg-clouds",
	ConditionRain:    "bg-rain",
	ConditionStorm:   "bg-storm",
	ConditionSnow:    "bg-snow",
	ConditionMist:    "bg-mist",
	ConditionDefault: "bg-default",
}

var conditionAnimations = map[Condition]string{
	ConditionClear:  "anim-sun",
	ConditionClouds: "anim-drift",
	ConditionRain:   "anim-drops",
	ConditionStorm:  "anim-flash",
	ConditionSnow:   "anim-flakes",
	ConditionMist:   "anim-haze",
}

// Classify maps a free-text description to a Condition by case-insensitive
// substring tests in fixed priority order.
func Classify(description string) Condition {
	d := strings.ToLower(description)

	switch {
	case strings.Contains(d, "clear"):
		return ConditionClear
	case strings.Contains(d, "cloud"):
		return ConditionClouds
	case strings.Contains(d, "rain"):
		return ConditionRain
	case strings.Contains(d, "storm"), strings.Contains(d, "thunder"):
		return ConditionStorm
	case strings.Contains(d, "snow"):
		return ConditionSnow
	case strings.Contains(d, "mist"), strings.Contains(d, "fog"):
		return ConditionMist
	default:
		return ConditionDefault
	}
}

// Icon returns the glyph for a condition.
func Icon(c Condition) string {
	if icon, ok := conditionIcons[c]; ok {
		return icon
	}
	return conditionIcons[ConditionDefault]
}

// Background returns the background class for a condition.
func Background(c Condition) string {
	if bg, ok := conditionBackgrounds[c]; ok {
		return bg
	}
	return conditionBackgrounds[ConditionDefault]
}

// Animation returns the animation class for a condition; empty when the
// condition has no animated treatment.
func Animation(c Condition) string {
	return conditionAnimations[c]
}

// Alerts derives alert pills from the current conditions. Heat and cold are
// mutually exclusive; all other checks are independent and may co-occur.
// Temperature and wind thresholds are strict.
func Alerts(current models.CurrentWeather) []string {
	var alerts []string

	if current.TemperatureCelsius > 30 {
		alerts = append(alerts, AlertHeat)
	} else if current.TemperatureCelsius < 5 {
		alerts = append(alerts, AlertCold)
	}

	if current.WindSpeedKmh > 30 {
		alerts = append(alerts, AlertWind)
	}

	d := strings.ToLower(current.Description)
	if strings.Contains(d, "storm") || strings.Contains(d, "thunder") {
		alerts = append(alerts, AlertStorm)
	}

	return alerts
}

// ForecastDayView is one rendered forecast entry.
type ForecastDayView struct {
	Day         string  `json:"day"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// ReportView is the fully rendered weather report.
type ReportView struct {
	City        string            `json:"city"`
	Temperature float64           `json:"temperature"`
	Humidity    float64           `json:"humidity"`
	WindSpeed   float64           `json:"wind_speed"`
	Description string            `json:"description"`
	Condition   Condition         `json:"condition"`
	Icon        string            `json:"icon"`
	Background  string            `json:"background"`
	Animation   string            `json:"animation,omitempty"`
	Alerts      []string          `json:"alerts"`
	Forecast    []ForecastDayView `json:"forecast"`
}

// BuildReportView maps a report to its view. Pure and idempotent per call.
func BuildReportView(city string, report models.WeatherReport) ReportView {
	condition := Classify(report.Current.Description)

	view := ReportView{
		City:        city,
		Temperature: report.Current.TemperatureCelsius,
		Humidity:    report.Current.HumidityPercent,
		WindSpeed:   report.Current.WindSpeedKmh,
		Description: report.Current.Description,
		Condition:   condition,
		Icon:        Icon(condition),
		Background:  Background(condition),
		Animation:   Animation(condition),
		Alerts:      Alerts(report.Current),
	}

	for _, day := range report.Forecast {
		view.Forecast = append(view.Forecast, ForecastDayView{
			Day:         day.Day,
			High:        day.TempHighCelsius,
			Low:         day.TempLowCelsius,
			Description: day.Description,
			Icon:        Icon(Classify(day.Description)),
		})
	}

	return view
}
