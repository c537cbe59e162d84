package domain

import (
	"fmt"
	"math"
	"time"
)

// dateLayout keys activity buckets by local calendar date.
const dateLayout = "2006-01-02"

// ActivityByDate buckets completed sessions into a per-local-date count over
// the trailing window of `days` calendar days ending at `now` in `loc`.
//
// A session is keyed by its start instant converted into the local calendar
// date: a drive starting 23:00 UTC lands on the next day in an eastern zone.
// Dates with no sessions are absent from the map.
func ActivityByDate(sessions []DriveSession, days int, loc *time.Location, now time.Time) map[string]int {
	today := now.In(loc)
	rangeStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))
	rangeEnd := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	activity := make(map[string]int)
	for i := range sessions {
		s := &sessions[i]
		if s.InProgress() {
			continue
		}
		if s.StartedAt.Before(rangeStart) || !s.StartedAt.Before(rangeEnd) {
			continue
		}
		key := s.StartedAt.In(loc).Format(dateLayout)
		activity[key]++
	}
	return activity
}

// CalendarDay is one cell of the activity heat-map.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Calendar is the presentation form of an activity window: every date in the
// range in ascending order, plus a human label.
type Calendar struct {
	Days      []CalendarDay `json:"days"`
	Label     string        `json:"label"`
	TotalDays int           `json:"total_days"`
}

// CalendarData expands an activity map into the full `days`-long window ending
// today in `loc`. Dates missing from the map appear with count 0.
func CalendarData(activity map[string]int, days int, loc *time.Location, now time.Time) Calendar {
	today := now.In(loc)
	startDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	calendarDays := make([]CalendarDay, 0, days)
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i).Format(dateLayout)
		count := activity[date]
		calendarDays = append(calendarDays, CalendarDay{
			Date:  date,
			Count: count,
			Level: activityLevel(count),
		})
	}

	weeks := int(math.Round(float64(days) / 7.0))
	label := fmt.Sprintf("Last %d weeks", weeks)
	if weeks == 1 {
		label = "Last week"
	}

	return Calendar{
		Days:      calendarDays,
		Label:     label,
		TotalDays: days,
	}
}

func activityLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count >= 4:
		return 4
	default:
		return count
	}
}
