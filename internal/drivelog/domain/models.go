package domain

import "time"

// Requirement constants for a learner's permit log.
const (
	HoursNeeded      = 50
	NightHoursNeeded = 10
)

// DriveSession is a single timed practice drive. A session with no EndedAt is
// in progress; DurationMinutes is derived and present only once the session
// has ended.
type DriveSession struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	DriverName      string     `db:"driver_name" json:"driver_name"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	IsNightDrive    bool       `db:"is_night_drive" json:"is_night_drive"`
	Notes           string     `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

func (s *DriveSession) Completed() bool {
	return s.EndedAt != nil
}

func (s *DriveSession) InProgress() bool {
	return !s.Completed()
}

// DurationHours converts the derived minutes into decimal hours, rounded to
// two places. Zero while the session is in progress.
func (s *DriveSession) DurationHours() float64 {
	if s.DurationMinutes == nil {
		return 0
	}
	hours := float64(*s.DurationMinutes) / 60.0
	return float64(int(hours*100+0.5)) / 100
}

// UserContext is the location context a session owner provides: an optional
// explicit position plus an IANA timezone identifier (default "UTC").
type UserContext struct {
	UserID    string
	Latitude  *float64
	Longitude *float64
	Timezone  string
}

// Location returns the timezone for activity bucketing, falling back to UTC
// for empty or unknown identifiers.
func (u UserContext) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
