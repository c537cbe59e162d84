// Package solar computes civil sunrise and sunset instants and classifies
// instants as night or day at a geographic location.
//
// The calculation follows the standard sunrise/sunset algorithm from the
// Almanac for Computers (solar mean anomaly, true longitude, right ascension,
// declination, local hour angle) with the civil-twilight zenith of 96 degrees.
package solar

import (
	"math"
	"time"
)

// civilZenith is the solar zenith angle for civil twilight: the sun's center
// sits 6 degrees below the horizon.
const civilZenith = 96.0

// CivilSunriseSunset returns the civil sunrise and sunset instants, in UTC,
// for the calendar date of the given time (in UTC terms) at the given
// coordinates.
//
// Either value is nil when the event does not occur on that date (polar day
// or polar night). That is a normal outcome, not an error.
func CivilSunriseSunset(date time.Time, lat, lon float64) (sunrise, sunset *time.Time) {
	sunrise = eventTime(date, lat, lon, true)
	sunset = eventTime(date, lat, lon, false)
	return sunrise, sunset
}

func eventTime(date time.Time, lat, lon float64, rising bool) *time.Time {
	utc := date.UTC()
	year, month, day := utc.Date()
	n := float64(utc.YearDay())

	// Longitude hour and approximate event time in fractional days.
	lngHour := lon / 15
	var t float64
	if rising {
		t = n + ((6 - lngHour) / 24)
	} else {
		t = n + ((18 - lngHour) / 24)
	}

	// Solar mean anomaly.
	m := (0.9856 * t) - 3.289

	// Sun's true longitude.
	l := m + (1.916 * sinDeg(m)) + (0.020 * sinDeg(2*m)) + 282.634
	l = normalizeDeg(l)

	// Sun's right ascension, adjusted into the same quadrant as l,
	// then converted into hours.
	ra := normalizeDeg(atanDeg(0.91764 * tanDeg(l)))
	lQuadrant := math.Floor(l/90) * 90
	raQuadrant := math.Floor(ra/90) * 90
	ra = (ra + (lQuadrant - raQuadrant)) / 15

	// Sun's declination.
	sinDec := 0.39782 * sinDeg(l)
	cosDec := cosDeg(asinDeg(sinDec))

	// Local hour angle for the civil-twilight zenith.
	cosH := (cosDeg(civilZenith) - (sinDec * sinDeg(lat))) / (cosDec * cosDeg(lat))
	if cosH > 1 || cosH < -1 {
		// Sun never reaches the twilight boundary on this date: polar
		// day or polar night. No event.
		return nil
	}

	var h float64
	if rising {
		h = 360 - acosDeg(cosH)
	} else {
		h = acosDeg(cosH)
	}
	h /= 15

	// Local mean time of the event, normalized to a time of day.
	localT := math.Mod(h+ra-(0.06571*t)-6.622, 24)
	if localT < 0 {
		localT += 24
	}

	// Converting local mean time to UTC can cross a date boundary: a
	// sunrise east of Greenwich falls on the previous UTC day. The offset
	// must not be wrapped back onto the requested date, or the returned
	// pair would come out sunset-first.
	ut := localT - lngHour

	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	instant := midnight.Add(time.Duration(ut * float64(time.Hour)))
	return &instant
}

func normalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

func sinDeg(deg float64) float64  { return math.Sin(toRadians(deg)) }
func cosDeg(deg float64) float64  { return math.Cos(toRadians(deg)) }
func tanDeg(deg float64) float64  { return math.Tan(toRadians(deg)) }
func asinDeg(x float64) float64   { return toDegrees(math.Asin(x)) }
func acosDeg(x float64) float64   { return toDegrees(math.Acos(x)) }
func atanDeg(x float64) float64   { return toDegrees(math.Atan(x)) }
