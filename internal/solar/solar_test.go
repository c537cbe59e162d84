package solar

import (
	"testing"
	"time"
)

const (
	chicagoLat = 41.8781
	chicagoLon = -87.6298

	tokyoLat = 35.6762
	tokyoLon = 139.6503
)

func TestCivilSunriseSunsetChicagoWinter(t *testing.T) {
	date := time.Date(2024, time.December, 15, 12, 0, 0, 0, time.UTC)

	sunrise, sunset := CivilSunriseSunset(date, chicagoLat, chicagoLon)
	if sunrise == nil || sunset == nil {
		t.Fatalf("expected both events for Chicago in December, got sunrise=%v sunset=%v", sunrise, sunset)
	}

	// Civil dawn ~12:40 UTC (06:40 CST), civil dusk ~22:52 UTC (16:52 CST).
	wantSunrise := time.Date(2024, time.December, 15, 12, 40, 0, 0, time.UTC)
	wantSunset := time.Date(2024, time.December, 15, 22, 52, 0, 0, time.UTC)

	if diff := sunrise.Sub(wantSunrise); diff < -5*time.Minute || diff > 5*time.Minute {
		t.Errorf("sunrise = %v, want within 5m of %v", sunrise, wantSunrise)
	}
	if diff := sunset.Sub(wantSunset); diff < -5*time.Minute || diff > 5*time.Minute {
		t.Errorf("sunset = %v, want within 5m of %v", sunset, wantSunset)
	}
	if !sunrise.Before(*sunset) {
		t.Errorf("sunrise %v should precede sunset %v", sunrise, sunset)
	}
}

func TestCivilSunriseSunsetTokyoWinter(t *testing.T) {
	// East of Greenwich the morning event occurs on the previous UTC day.
	// The returned pair must still be ordered sunrise before sunset.
	date := time.Date(2024, time.December, 15, 3, 0, 0, 0, time.UTC)

	sunrise, sunset := CivilSunriseSunset(date, tokyoLat, tokyoLon)
	if sunrise == nil || sunset == nil {
		t.Fatalf("expected both events for Tokyo in December, got sunrise=%v sunset=%v", sunrise, sunset)
	}

	// Civil dawn ~06:15 JST = 21:15 UTC on Dec 14; civil dusk ~16:57 JST
	// = 07:57 UTC on Dec 15.
	wantSunrise := time.Date(2024, time.December, 14, 21, 15, 0, 0, time.UTC)
	wantSunset := time.Date(2024, time.December, 15, 7, 57, 0, 0, time.UTC)

	if diff := sunrise.Sub(wantSunrise); diff < -5*time.Minute || diff > 5*time.Minute {
		t.Errorf("sunrise = %v, want within 5m of %v", sunrise, wantSunrise)
	}
	if diff := sunset.Sub(wantSunset); diff < -5*time.Minute || diff > 5*time.Minute {
		t.Errorf("sunset = %v, want within 5m of %v", sunset, wantSunset)
	}
	if !sunrise.Before(*sunset) {
		t.Errorf("sunrise %v should precede sunset %v", sunrise, sunset)
	}
}

func TestCivilSunriseSunsetPolarSummer(t *testing.T) {
	// Near the North Pole in June the sun never drops below civil twilight.
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	sunrise, sunset := CivilSunriseSunset(date, 89.0, 0.0)
	if sunrise != nil {
		t.Errorf("expected no sunrise at lat 89 in polar summer, got %v", sunrise)
	}
	if sunset != nil {
		t.Errorf("expected no sunset at lat 89 in polar summer, got %v", sunset)
	}
}

func TestCivilSunriseSunsetPolarWinter(t *testing.T) {
	date := time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC)

	sunrise, sunset := CivilSunriseSunset(date, 89.0, 0.0)
	if sunrise != nil || sunset != nil {
		t.Errorf("expected no events at lat 89 in polar winter, got sunrise=%v sunset=%v", sunrise, sunset)
	}
}

func TestCivilSunriseSunsetUsesUTCDate(t *testing.T) {
	// The same instant expressed in a non-UTC zone must compute the same
	// events: the calendar date is taken in UTC terms.
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	utcDate := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	localDate := utcDate.In(chicago)

	r1, s1 := CivilSunriseSunset(utcDate, chicagoLat, chicagoLon)
	r2, s2 := CivilSunriseSunset(localDate, chicagoLat, chicagoLon)

	if !r1.Equal(*r2) || !s1.Equal(*s2) {
		t.Errorf("events differ across representations of the same instant: (%v, %v) vs (%v, %v)", r1, s1, r2, s2)
	}
}
