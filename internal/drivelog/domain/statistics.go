package domain

// Statistics is the aggregate progress over a user's sessions.
type Statistics struct {
	TotalHours       float64       `json:"total_hours"`
	NightHours       float64       `json:"night_hours"`
	HoursNeeded      float64       `json:"hours_needed"`
	NightHoursNeeded float64       `json:"night_hours_needed"`
	InProgress       *DriveSession `json:"in_progress,omitempty"`
}

// StatisticsFor aggregates a snapshot of a user's sessions into total and
// night hours plus the remaining requirement. Only completed sessions carry
// hours; the surrounding application guarantees at most one in-progress
// session, so the first one found wins.
func StatisticsFor(sessions []DriveSession) Statistics {
	var totalMinutes, nightMinutes int
	var inProgress *DriveSession

	for i := range sessions {
		s := &sessions[i]
		if s.InProgress() {
			if inProgress == nil {
				inProgress = s
			}
			continue
		}
		if s.DurationMinutes == nil {
			continue
		}
		totalMinutes += *s.DurationMinutes
		if s.IsNightDrive {
			nightMinutes += *s.DurationMinutes
		}
	}

	stats := Statistics{
		TotalHours: float64(totalMinutes) / 60.0,
		NightHours: float64(nightMinutes) / 60.0,
		InProgress: inProgress,
	}
	stats.HoursNeeded = max0(HoursNeeded - stats.TotalHours)
	stats.NightHoursNeeded = max0(NightHoursNeeded - stats.NightHours)

	return stats
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
