package domain

import (
	"testing"
	"time"
)

const (
	chicagoLat = 41.8781
	chicagoLon = -87.6298
)

func timePtr(t time.Time) *time.Time { return &t }

func TestComputeDuration(t *testing.T) {
	base := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		started time.Time
		ended   time.Time
		want    int
	}{
		{name: "one hour", started: base, ended: base.Add(time.Hour), want: 60},
		{name: "ninety seconds truncates to one minute", started: base, ended: base.Add(90 * time.Second), want: 1},
		{name: "under a minute truncates to zero", started: base, ended: base.Add(59 * time.Second), want: 0},
		{name: "ten hours", started: base, ended: base.Add(10 * time.Hour), want: 600},
		{name: "sub-minute remainder discarded", started: base, ended: base.Add(2*time.Hour + 59*time.Second), want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDuration(tt.started, tt.ended)
			if got != tt.want {
				t.Errorf("ComputeDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		session    DriveSession
		wantFields []string
	}{
		{
			name:    "valid in-progress session",
			session: DriveSession{DriverName: "Alex", StartedAt: started},
		},
		{
			name:    "valid completed session",
			session: DriveSession{DriverName: "Alex", StartedAt: started, EndedAt: timePtr(started.Add(time.Hour))},
		},
		{
			name:       "missing driver name",
			session:    DriveSession{StartedAt: started},
			wantFields: []string{"driver_name"},
		},
		{
			name:       "missing started at",
			session:    DriveSession{DriverName: "Alex"},
			wantFields: []string{"started_at"},
		},
		{
			name:       "ended before started",
			session:    DriveSession{DriverName: "Alex", StartedAt: started, EndedAt: timePtr(started.Add(-time.Hour))},
			wantFields: []string{"ended_at"},
		},
		{
			name:       "ended equal to started",
			session:    DriveSession{DriverName: "Alex", StartedAt: started, EndedAt: timePtr(started)},
			wantFields: []string{"ended_at"},
		},
		{
			name:       "everything missing",
			session:    DriveSession{},
			wantFields: []string{"driver_name", "started_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.session.Validate()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Validate() returned %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d on field %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestComputeNightFlag(t *testing.T) {
	// Chicago, 2024-12-15: civil dawn 06:40 CST (12:40 UTC), civil dusk
	// 16:52 CST (22:52 UTC).
	afternoon := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC) // 14:00 CST
	evening := time.Date(2024, time.December, 15, 23, 0, 0, 0, time.UTC)   // 17:00 CST

	tests := []struct {
		name    string
		started time.Time
		ended   *time.Time
		want    bool
	}{
		{name: "day drive", started: afternoon, ended: timePtr(afternoon.Add(time.Hour)), want: false},
		{name: "night start", started: evening, ended: timePtr(evening.Add(time.Hour)), want: true},
		{name: "day start crossing into night", started: afternoon, ended: timePtr(evening), want: true},
		{name: "in-progress day start", started: afternoon, ended: nil, want: false},
		{name: "in-progress night start", started: evening, ended: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNightFlag(tt.started, tt.ended, chicagoLat, chicagoLon)
			if got != tt.want {
				t.Errorf("ComputeNightFlag() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestNormalizeDerivesFields(t *testing.T) {
	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	ended := started.Add(3 * time.Hour) // ends 17:00 CST, after civil dusk

	session := &DriveSession{
		DriverName: "Alex",
		StartedAt:  started,
		EndedAt:    &ended,
	}

	if err := session.Normalize(chicagoLat, chicagoLon); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if session.DurationMinutes == nil || *session.DurationMinutes != 180 {
		t.Errorf("DurationMinutes = %v, want 180", session.DurationMinutes)
	}
	if !session.IsNightDrive {
		t.Error("expected night flag: session ends after civil dusk")
	}
}

func TestNormalizeRecomputesOnEdit(t *testing.T) {
	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	ended := started.Add(3 * time.Hour)

	session := &DriveSession{DriverName: "Alex", StartedAt: started, EndedAt: &ended}
	if err := session.Normalize(chicagoLat, chicagoLon); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	// Edit the end back into the afternoon: duration shrinks and the night
	// flag clears.
	newEnd := started.Add(time.Hour)
	session.EndedAt = &newEnd
	if err := session.Normalize(chicagoLat, chicagoLon); err != nil {
		t.Fatalf("Normalize() after edit error = %v", err)
	}
	if *session.DurationMinutes != 60 {
		t.Errorf("DurationMinutes = %d, want 60", *session.DurationMinutes)
	}
	if session.IsNightDrive {
		t.Error("night flag should clear once the drive no longer touches night")
	}

	// Re-opening the session drops the derived duration entirely.
	session.EndedAt = nil
	if err := session.Normalize(chicagoLat, chicagoLon); err != nil {
		t.Fatalf("Normalize() reopened error = %v", err)
	}
	if session.DurationMinutes != nil {
		t.Errorf("DurationMinutes = %v, want nil for in-progress session", session.DurationMinutes)
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	ended := started.Add(-time.Hour)

	session := &DriveSession{DriverName: "Alex", StartedAt: started, EndedAt: &ended}
	err := session.Normalize(chicagoLat, chicagoLon)
	if err == nil {
		t.Fatal("expected validation error for ended_at before started_at")
	}

	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "ended_at" {
		t.Errorf("unexpected errors: %v", verrs)
	}
}

func TestDurationHours(t *testing.T) {
	minutes := 90
	session := DriveSession{DurationMinutes: &minutes}
	if got := session.DurationHours(); got != 1.5 {
		t.Errorf("DurationHours() = %v, want 1.5", got)
	}

	var inProgress DriveSession
	if got := inProgress.DurationHours(); got != 0 {
		t.Errorf("DurationHours() for in-progress = %v, want 0", got)
	}
}
