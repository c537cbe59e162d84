package geo

import "testing"

func ptr(v float64) *float64 { return &v }

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		lat      *float64
		lon      *float64
		want     Coordinates
	}{
		{
			name:     "explicit coordinates win over timezone",
			timezone: "America/Chicago",
			lat:      ptr(35.0),
			lon:      ptr(-100.0),
			want:     Coordinates{Lat: 35.0, Lon: -100.0},
		},
		{
			name:     "missing coordinates fall back to timezone city",
			timezone: "America/Chicago",
			want:     Coordinates{Lat: 41.8781, Lon: -87.6298},
		},
		{
			name:     "only latitude present falls back",
			timezone: "America/Denver",
			lat:      ptr(39.0),
			want:     Coordinates{Lat: 39.7392, Lon: -104.9903},
		},
		{
			name:     "out of range latitude treated as absent",
			timezone: "America/Chicago",
			lat:      ptr(120.0),
			lon:      ptr(-87.0),
			want:     Coordinates{Lat: 41.8781, Lon: -87.6298},
		},
		{
			name:     "out of range longitude treated as absent",
			timezone: "Pacific/Honolulu",
			lat:      ptr(21.0),
			lon:      ptr(-200.0),
			want:     Coordinates{Lat: 21.3099, Lon: -157.8581},
		},
		{
			name:     "unknown timezone resolves to the UTC entry",
			timezone: "Europe/Stockholm",
			want:     Coordinates{Lat: 40.7128, Lon: -74.0060},
		},
		{
			name:     "empty timezone resolves to the UTC entry",
			timezone: "",
			want:     Coordinates{Lat: 40.7128, Lon: -74.0060},
		},
		{
			name:     "UTC uses the New York fallback",
			timezone: "UTC",
			want:     Coordinates{Lat: 40.7128, Lon: -74.0060},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.timezone, tt.lat, tt.lon)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.timezone, got, tt.want)
			}
		})
	}
}
