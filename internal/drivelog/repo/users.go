package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"drivelog/internal/drivelog/domain"
)

// UserContextRepo reads the location context the drive-log core needs from
// the users table. Account management itself lives in the auth module.
type UserContextRepo struct {
	db *pgxpool.Pool
}

func NewUserContextRepo(db *pgxpool.Pool) *UserContextRepo {
	return &UserContextRepo{db: db}
}

func (r *UserContextRepo) UserContext(ctx context.Context, userID string) (domain.UserContext, error) {
	userCtx := domain.UserContext{UserID: userID}

	err := r.db.QueryRow(ctx, `
		SELECT latitude, longitude, COALESCE(timezone, 'UTC')
		FROM users
		WHERE id = $1
	`, userID).Scan(&userCtx.Latitude, &userCtx.Longitude, &userCtx.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserContext{}, domain.ErrUserNotFound
		}
		return domain.UserContext{}, err
	}
	return userCtx, nil
}
