package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"drivelog/internal/drivelog/domain"
	"drivelog/internal/geo"
	"drivelog/internal/shared/util"
)

type DriveLogService struct {
	sessions domain.SessionRepository
	users    domain.UserContextRepository
	pub      domain.EventPublisher
	logger   *util.Logger
}

func NewDriveLogService(
	sessions domain.SessionRepository,
	users domain.UserContextRepository,
	pub domain.EventPublisher,
	logger *util.Logger,
) *DriveLogService {
	return &DriveLogService{sessions: sessions, users: users, pub: pub, logger: logger}
}

type StartSessionInput struct {
	DriverName string
	StartedAt  *time.Time
	Notes      string
}

type UpdateSessionInput struct {
	DriverName *string
	StartedAt  *time.Time
	EndedAt    *time.Time
	Notes      *string
}

// StartSession opens a new in-progress drive. Only one drive may run at a time
// per user; StartedAt defaults to now.
func (s *DriveLogService) StartSession(ctx context.Context, userID string, input StartSessionInput) (*domain.DriveSession, error) {
	instance := "DriveLogService.StartSession"

	existing, err := s.sessions.InProgressByUser(ctx, userID)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to check in-progress session: %w", err))
		return nil, err
	}
	if existing != nil {
		s.logger.Warn(instance, fmt.Sprintf("user %s already has session %s in progress", userID, existing.ID))
		return nil, domain.ErrSessionInProgress
	}

	startedAt := time.Now().UTC()
	if input.StartedAt != nil {
		startedAt = input.StartedAt.UTC()
	}

	session := &domain.DriveSession{
		ID:         uuid.NewString(),
		UserID:     userID,
		DriverName: input.DriverName,
		StartedAt:  startedAt,
		Notes:      input.Notes,
	}

	if err := s.normalize(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to create session: %w", err))
		return nil, err
	}

	s.publish(ctx, instance, domain.SessionEvent{
		Type:      domain.EventSessionStarted,
		UserID:    userID,
		SessionID: session.ID,
		Session:   session,
	})

	s.logger.OK(instance, fmt.Sprintf("session started [id=%s, user=%s]", session.ID, userID))
	return session, nil
}

// CompleteSession ends an in-progress drive. EndedAt defaults to now. The
// night flag is re-derived because the end instant now participates in the
// classification.
func (s *DriveLogService) CompleteSession(ctx context.Context, userID, sessionID string, endedAt *time.Time) (*domain.DriveSession, error) {
	instance := "DriveLogService.CompleteSession"

	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	if endedAt != nil {
		end = endedAt.UTC()
	}
	session.EndedAt = &end

	if err := s.normalize(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to update session: %w", err))
		return nil, err
	}

	s.publish(ctx, instance, domain.SessionEvent{
		Type:      domain.EventSessionCompleted,
		UserID:    userID,
		SessionID: session.ID,
		Session:   session,
	})

	s.logger.OK(instance, fmt.Sprintf("session completed [id=%s, duration=%dm, night=%t]",
		session.ID, *session.DurationMinutes, session.IsNightDrive))
	return session, nil
}

// UpdateSession edits an existing drive. Any timestamp change re-derives both
// duration and the night flag before the record is persisted.
func (s *DriveLogService) UpdateSession(ctx context.Context, userID, sessionID string, input UpdateSessionInput) (*domain.DriveSession, error) {
	instance := "DriveLogService.UpdateSession"

	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if input.DriverName != nil {
		session.DriverName = *input.DriverName
	}
	if input.StartedAt != nil {
		session.StartedAt = input.StartedAt.UTC()
	}
	if input.EndedAt != nil {
		end := input.EndedAt.UTC()
		session.EndedAt = &end
	}
	if input.Notes != nil {
		session.Notes = *input.Notes
	}

	if err := s.normalize(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to update session: %w", err))
		return nil, err
	}

	s.publish(ctx, instance, domain.SessionEvent{
		Type:      domain.EventSessionUpdated,
		UserID:    userID,
		SessionID: session.ID,
		Session:   session,
	})

	s.logger.OK(instance, fmt.Sprintf("session updated [id=%s]", session.ID))
	return session, nil
}

// DeleteSession removes a drive and announces the deletion so projections can
// refresh.
func (s *DriveLogService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	instance := "DriveLogService.DeleteSession"

	if err := s.sessions.Delete(ctx, sessionID, userID); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to delete session: %w", err))
		return err
	}

	s.publish(ctx, instance, domain.SessionEvent{
		Type:      domain.EventSessionDeleted,
		UserID:    userID,
		SessionID: sessionID,
	})

	s.logger.OK(instance, fmt.Sprintf("session deleted [id=%s]", sessionID))
	return nil
}

// ListSessions returns the user's sessions ordered by start time, newest
// first.
func (s *DriveLogService) ListSessions(ctx context.Context, userID string) ([]domain.DriveSession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// Statistics computes the aggregate progress projection over a fresh snapshot
// of the user's sessions.
func (s *DriveLogService) Statistics(ctx context.Context, userID string) (domain.Statistics, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.StatisticsFor(sessions), nil
}

// ActivityCalendar builds the daily heat-map for the trailing window of days,
// bucketed in the user's timezone.
func (s *DriveLogService) ActivityCalendar(ctx context.Context, userID string, days int) (domain.Calendar, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return domain.Calendar{}, err
	}

	userCtx, err := s.users.UserContext(ctx, userID)
	if err != nil {
		return domain.Calendar{}, err
	}

	loc := userCtx.Location()
	now := time.Now()
	activity := domain.ActivityByDate(sessions, days, loc, now)
	return domain.CalendarData(activity, days, loc, now), nil
}

func (s *DriveLogService) ownedSession(ctx context.Context, userID, sessionID string) (*domain.DriveSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return session, nil
}

// normalize resolves the owner's coordinates, then validates and re-derives
// the session's duration and night flag in place.
func (s *DriveLogService) normalize(ctx context.Context, session *domain.DriveSession) error {
	userCtx, err := s.users.UserContext(ctx, session.UserID)
	if err != nil {
		return err
	}

	coords := geo.Resolve(userCtx.Timezone, userCtx.Latitude, userCtx.Longitude)
	if err := session.Normalize(coords.Lat, coords.Lon); err != nil {
		s.logger.Warn("DriveLogService.normalize", err.Error())
		return err
	}
	return nil
}

func (s *DriveLogService) publish(ctx context.Context, instance string, event domain.SessionEvent) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishSessionEvent(ctx, event); err != nil {
		// A failed broadcast must not roll back a successful save.
		s.logger.Error(instance, fmt.Errorf("failed to publish %s event: %w", event.Type, err))
	}
}
