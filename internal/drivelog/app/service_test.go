package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"drivelog/internal/drivelog/domain"
	"drivelog/internal/shared/util"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.DriveSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.DriveSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.DriveSession) error {
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *domain.DriveSession) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id, userID string) error {
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.DriveSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) ListByUser(_ context.Context, userID string) ([]domain.DriveSession, error) {
	var out []domain.DriveSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) InProgressByUser(_ context.Context, userID string) (*domain.DriveSession, error) {
	for _, s := range r.sessions {
		if s.UserID == userID && s.InProgress() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeUserRepo struct {
	ctx domain.UserContext
}

func (r *fakeUserRepo) UserContext(_ context.Context, userID string) (domain.UserContext, error) {
	out := r.ctx
	out.UserID = userID
	return out, nil
}

type recordingPublisher struct {
	events []domain.SessionEvent
}

func (p *recordingPublisher) PublishSessionEvent(_ context.Context, event domain.SessionEvent) error {
	p.events = append(p.events, event)
	return nil
}

func newTestService() (*DriveLogService, *fakeSessionRepo, *recordingPublisher) {
	sessions := newFakeSessionRepo()
	users := &fakeUserRepo{ctx: domain.UserContext{Timezone: "America/Chicago"}}
	pub := &recordingPublisher{}
	service := NewDriveLogService(sessions, users, pub, util.New())
	return service, sessions, pub
}

func TestStartSessionEnforcesSingleInProgress(t *testing.T) {
	service, _, pub := newTestService()
	ctx := context.Background()

	first, err := service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if first.Completed() {
		t.Fatal("new session should be in progress")
	}

	_, err = service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex"})
	if !errors.Is(err, domain.ErrSessionInProgress) {
		t.Fatalf("second StartSession() error = %v, want ErrSessionInProgress", err)
	}

	// Other users are unaffected.
	if _, err := service.StartSession(ctx, "user-2", StartSessionInput{DriverName: "Sam"}); err != nil {
		t.Fatalf("StartSession() for other user error = %v", err)
	}

	if len(pub.events) != 2 || pub.events[0].Type != domain.EventSessionStarted {
		t.Errorf("events = %v, want two session.started", pub.events)
	}
}

func TestStartSessionValidation(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.StartSession(context.Background(), "user-1", StartSessionInput{})
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("StartSession() error = %v, want ValidationErrors", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "driver_name" {
		t.Errorf("unexpected validation errors: %v", verrs)
	}
}

func TestCompleteSessionDerivesDurationAndNight(t *testing.T) {
	service, repo, pub := newTestService()
	ctx := context.Background()

	// 14:00 CST winter afternoon start.
	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	session, err := service.StartSession(ctx, "user-1", StartSessionInput{
		DriverName: "Alex",
		StartedAt:  &started,
	})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if session.IsNightDrive {
		t.Error("afternoon start should not be flagged night while in progress")
	}

	// Ends at 17:00 CST, after civil dusk: the end instant flips the flag.
	ended := time.Date(2024, time.December, 15, 23, 0, 0, 0, time.UTC)
	completed, err := service.CompleteSession(ctx, "user-1", session.ID, &ended)
	if err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}
	if completed.DurationMinutes == nil || *completed.DurationMinutes != 180 {
		t.Errorf("DurationMinutes = %v, want 180", completed.DurationMinutes)
	}
	if !completed.IsNightDrive {
		t.Error("drive ending after civil dusk should be a night drive")
	}

	stored, _ := repo.GetByID(ctx, session.ID)
	if !stored.Completed() {
		t.Error("stored session should be completed")
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != domain.EventSessionCompleted {
		t.Errorf("last event = %s, want session.completed", last.Type)
	}
}

func TestCompleteSessionRejectsEndBeforeStart(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	session, err := service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex", StartedAt: &started})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	tooEarly := started.Add(-time.Hour)
	_, err = service.CompleteSession(ctx, "user-1", session.ID, &tooEarly)
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("CompleteSession() error = %v, want ValidationErrors", err)
	}
}

func TestUpdateSessionForbiddenForOtherUser(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	session, err := service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	name := "Mallory"
	_, err = service.UpdateSession(ctx, "user-2", session.ID, UpdateSessionInput{DriverName: &name})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("UpdateSession() error = %v, want ErrForbidden", err)
	}
}

func TestDeleteSessionPublishesEvent(t *testing.T) {
	service, repo, pub := newTestService()
	ctx := context.Background()

	session, err := service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	if err := service.DeleteSession(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, session.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("session should be gone after delete")
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != domain.EventSessionDeleted || last.SessionID != session.ID {
		t.Errorf("last event = %+v, want session.deleted for %s", last, session.ID)
	}
}

func TestExportCSVSkipsInProgress(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	started := time.Date(2024, time.December, 15, 20, 0, 0, 0, time.UTC)
	session, err := service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex", StartedAt: &started, Notes: "highway practice"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	ended := started.Add(time.Hour)
	if _, err := service.CompleteSession(ctx, "user-1", session.ID, &ended); err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}

	// A second, still-open drive for the same user must not appear.
	later := ended.Add(time.Hour)
	if _, err := service.StartSession(ctx, "user-1", StartSessionInput{DriverName: "Alex", StartedAt: &later}); err != nil {
		t.Fatalf("second StartSession() error = %v", err)
	}

	var buf bytes.Buffer
	if err := service.ExportCSV(ctx, "user-1", &buf); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want header plus one row:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "driver_name,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "highway practice") {
		t.Errorf("row missing notes: %s", lines[1])
	}
}
