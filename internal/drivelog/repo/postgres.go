package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"drivelog/internal/drivelog/domain"
)

type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, session *domain.DriveSession) error {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO drive_sessions
			(id, user_id, driver_name, started_at, ended_at, duration_minutes, is_night_drive, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		session.ID, session.UserID, session.DriverName, session.StartedAt, session.EndedAt,
		session.DurationMinutes, session.IsNightDrive, session.Notes, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert drive session failed: %w", err)
	}
	return nil
}

func (r *SessionRepo) Update(ctx context.Context, session *domain.DriveSession) error {
	session.UpdatedAt = time.Now().UTC()

	cmd, err := r.db.Exec(ctx, `
		UPDATE drive_sessions
		SET driver_name = $1,
		    started_at = $2,
		    ended_at = $3,
		    duration_minutes = $4,
		    is_night_drive = $5,
		    notes = $6,
		    updated_at = $7
		WHERE id = $8 AND user_id = $9
	`,
		session.DriverName, session.StartedAt, session.EndedAt, session.DurationMinutes,
		session.IsNightDrive, session.Notes, session.UpdatedAt, session.ID, session.UserID,
	)
	if err != nil {
		return fmt.Errorf("update drive session failed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id, userID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM drive_sessions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete drive session failed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*domain.DriveSession, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, driver_name, started_at, ended_at, duration_minutes, is_night_drive, notes, created_at, updated_at
		FROM drive_sessions
		WHERE id = $1
	`, id)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (r *SessionRepo) ListByUser(ctx context.Context, userID string) ([]domain.DriveSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, driver_name, started_at, ended_at, duration_minutes, is_night_drive, notes, created_at, updated_at
		FROM drive_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list drive sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []domain.DriveSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *SessionRepo) InProgressByUser(ctx context.Context, userID string) (*domain.DriveSession, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, driver_name, started_at, ended_at, duration_minutes, is_night_drive, notes, created_at, updated_at
		FROM drive_sessions
		WHERE user_id = $1 AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`, userID)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func scanSession(row pgx.Row) (*domain.DriveSession, error) {
	var session domain.DriveSession
	err := row.Scan(
		&session.ID, &session.UserID, &session.DriverName, &session.StartedAt, &session.EndedAt,
		&session.DurationMinutes, &session.IsNightDrive, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
