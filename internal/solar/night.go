package solar

import "time"

// IsNight reports whether the given instant is night at the given coordinates:
// outside the civil daylight window [sunrise, sunset] computed for the
// instant's UTC calendar date.
//
// When the date has no sunrise or no sunset (polar regions) the instant is
// classified as not night. That is a deliberate conservative default.
func IsNight(instant time.Time, lat, lon float64) bool {
	sunrise, sunset := CivilSunriseSunset(instant.UTC(), lat, lon)
	if sunrise == nil || sunset == nil {
		return false
	}
	return instant.Before(*sunrise) || instant.After(*sunset)
}
