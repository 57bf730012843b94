package domain

// WeatherData is a snapshot of current conditions for a city.
// City holds the canonical geocoded name, which may differ from the
// free-text query that produced it.
type WeatherData struct {
	Temp       int    `json:"temp"`
	Condition  string `json:"condition"`
	City       string `json:"city"`
	UpdateTime string `json:"update_time"`
}

// GeoLocation is a geocoding lookup result. It is consumed immediately
// to build the weather query and never persisted.
type GeoLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
	Adm1 string `json:"adm1"`
	Adm2 string `json:"adm2"`
	TZ   string `json:"tz"`
}

// CachedWeather is the single persisted weather cache entry.
// Timestamp is epoch milliseconds; City is the original query string,
// not the canonical name, so a different query invalidates the entry
// even when both resolve to the same place.
type CachedWeather struct {
	Data      WeatherData `json:"data"`
	Timestamp int64       `json:"timestamp"`
	City      string      `json:"city"`
}
