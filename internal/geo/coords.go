// Package geo resolves the coordinates used for sunrise/sunset computation.
package geo

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// timezoneCoords maps common US IANA timezone identifiers to a representative
// city, used when a user has not shared an exact location.
var timezoneCoords = map[string]Coordinates{
	// Eastern Time
	"America/New_York":             {Lat: 40.7128, Lon: -74.0060},
	"America/Detroit":              {Lat: 42.3314, Lon: -83.0458},
	"America/Kentucky/Louisville":  {Lat: 38.2527, Lon: -85.7585},
	"America/Indiana/Indianapolis": {Lat: 39.7684, Lon: -86.1581},

	// Central Time
	"America/Chicago":             {Lat: 41.8781, Lon: -87.6298},
	"America/Menominee":           {Lat: 45.1077, Lon: -87.6140},
	"America/Indiana/Knox":        {Lat: 41.2959, Lon: -86.6250},
	"America/North_Dakota/Center": {Lat: 47.1164, Lon: -101.2996},

	// Mountain Time
	"America/Denver":  {Lat: 39.7392, Lon: -104.9903},
	"America/Boise":   {Lat: 43.6150, Lon: -116.2023},
	"America/Phoenix": {Lat: 33.4484, Lon: -112.0740}, // no DST

	// Pacific Time
	"America/Los_Angeles": {Lat: 34.0522, Lon: -118.2437},
	"America/Seattle":     {Lat: 47.6062, Lon: -122.3321},

	// Alaska Time
	"America/Anchorage": {Lat: 61.2181, Lon: -149.9003},
	"America/Juneau":    {Lat: 58.3019, Lon: -134.4197},

	// Hawaii Time
	"Pacific/Honolulu": {Lat: 21.3099, Lon: -157.8581},

	// Default fallback (New York)
	"UTC": {Lat: 40.7128, Lon: -74.0060},
}

// Resolve returns the coordinates to use for a user: the explicit pair when
// both values are present and in range, otherwise the representative city for
// the timezone. Unknown timezones resolve to the "UTC" entry (New York); the
// approximation is deliberate, so resolution never fails.
//
// Out-of-range explicit values are treated the same as absent ones. Range
// checks at data entry belong to profile validation, not to resolution.
func Resolve(timezone string, lat, lon *float64) Coordinates {
	if lat != nil && lon != nil && inRange(*lat, *lon) {
		return Coordinates{Lat: *lat, Lon: *lon}
	}
	if c, ok := timezoneCoords[timezone]; ok {
		return c
	}
	return timezoneCoords["UTC"]
}

func inRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
