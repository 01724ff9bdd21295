package repositories

// Prompts sent to the generative backend. Each one pins the exact JSON shape
// the caller will validate against; the backend is still treated as untrusted
// input on the way back.

const weatherPrompt = `You are a weather data service. Provide current weather and a 5-day forecast for the city "%s".
Use Celsius for all temperatures and km/h for wind speed.
Respond ONLY with a JSON object in exactly this shape, with all fields present:
{
  "current": {
    "temp": <number, current temperature in Celsius>,
    "humidity": <number, relative humidity percent>,
    "wind_speed": <number, wind speed in km/h>,
    "description": <string, short weather description, e.g. "light rain">
  },
  "forecast": [
    {
      "day": <string, weekday name>,
      "temp_high": <number, daily high in Celsius>,
      "temp_low": <number, daily low in Celsius>,
      "description": <string, short weather description>
    }
  ]
}
The forecast array must contain exactly 5 entries in chronological order starting tomorrow.
Do not include markdown, comments or any text outside the JSON object.`

const suggestionsPrompt = `You are a city name autocomplete service. The user has typed the partial city name "%s".
Respond ONLY with a JSON array of up to 5 strings, each a real city formatted as "City, Country", best matches first.
Return [] if nothing matches. Do not include markdown, comments or any text outside the JSON array.`
