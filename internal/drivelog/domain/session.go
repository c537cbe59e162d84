package domain

import (
	"time"

	"drivelog/internal/solar"
)

// ComputeDuration returns the whole minutes elapsed between the two instants,
// truncating sub-minute remainders (integer seconds divided by 60).
func ComputeDuration(startedAt, endedAt time.Time) int {
	return int(endedAt.Sub(startedAt).Seconds()) / 60
}

// ComputeNightFlag classifies a session as a night drive: the start instant is
// night, or the session has ended and the end instant is night. An in-progress
// session is judged on its start alone and must be re-derived once it ends.
func ComputeNightFlag(startedAt time.Time, endedAt *time.Time, lat, lon float64) bool {
	if solar.IsNight(startedAt, lat, lon) {
		return true
	}
	return endedAt != nil && solar.IsNight(*endedAt, lat, lon)
}

// Validate checks the session's own invariants and returns every field error
// found. A nil return means the session is valid.
func (s *DriveSession) Validate() ValidationErrors {
	var errs ValidationErrors

	if s.DriverName == "" {
		errs = append(errs, FieldError{Field: "driver_name", Message: "can't be blank"})
	}
	if s.StartedAt.IsZero() {
		errs = append(errs, FieldError{Field: "started_at", Message: "can't be blank"})
	}
	if s.EndedAt != nil && !s.StartedAt.IsZero() && !s.EndedAt.After(s.StartedAt) {
		errs = append(errs, FieldError{Field: "ended_at", Message: "must be after start time"})
	}

	return errs
}

// Normalize validates the session and re-derives DurationMinutes and
// IsNightDrive from the current timestamps. The service calls it before every
// insert or update, so the derived fields can never go stale against the
// timestamps that produced them.
func (s *DriveSession) Normalize(lat, lon float64) error {
	if errs := s.Validate(); len(errs) > 0 {
		return errs
	}

	if s.EndedAt != nil {
		minutes := ComputeDuration(s.StartedAt, *s.EndedAt)
		s.DurationMinutes = &minutes
	} else {
		s.DurationMinutes = nil
	}

	s.IsNightDrive = ComputeNightFlag(s.StartedAt, s.EndedAt, lat, lon)
	return nil
}
