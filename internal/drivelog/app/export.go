package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ExportCSV writes the user's completed sessions as CSV rows, newest first,
// matching the column order of the dashboard table.
func (s *DriveLogService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"driver_name", "started_at", "ended_at", "duration_minutes", "night_drive", "notes"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range sessions {
		session := &sessions[i]
		if session.InProgress() {
			continue
		}
		row := []string{
			session.DriverName,
			session.StartedAt.UTC().Format(time.RFC3339),
			session.EndedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(*session.DurationMinutes),
			strconv.FormatBool(session.IsNightDrive),
			session.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
