package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	authdomain "drivelog/internal/auth/domain"
	"drivelog/internal/auth/repo"
	"drivelog/internal/shared/jwt"
	"drivelog/internal/shared/util"
	"drivelog/internal/shared/validation"
)

type AuthService struct {
	repo      *repo.AuthRepo
	jwtSecret []byte
	logger    *util.Logger
}

func NewAuthService(r *repo.AuthRepo, jwtSecret []byte, logger *util.Logger) *AuthService {
	return &AuthService{repo: r, jwtSecret: jwtSecret, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.User, error) {
	instance := "AuthService.Register"

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateStringNotEmpty(email, "email"); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringNotEmpty(req.Name, "name"); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error(instance, fmt.Errorf("failed to check existing user: %w", err))
		return nil, err
	}
	if existing != nil {
		s.logger.Warn(instance, fmt.Sprintf("user with email %s already exists", email))
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	user := &authdomain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hashPassword(req.Password),
		Timezone:     "UTC",
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to create user: %w", err))
		return nil, err
	}

	s.logger.OK(instance, fmt.Sprintf("user registered [id=%s, email=%s]", user.ID, email))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req authdomain.LoginRequest) (string, *authdomain.User, error) {
	instance := "AuthService.Login"

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn(instance, fmt.Sprintf("login failed: user not registered [email=%s]", email))
			return "", nil, errors.New("user not registered")
		}
		s.logger.Error(instance, fmt.Errorf("failed to query user: %w", err))
		return "", nil, err
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		s.logger.Warn(instance, fmt.Sprintf("invalid password for user [email=%s]", email))
		return "", nil, errors.New("invalid password")
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.Email)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to generate token: %w", err))
		return "", nil, err
	}

	s.logger.OK(instance, fmt.Sprintf("user login successful [user_id=%s]", user.ID))
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*authdomain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// UpdateProfile edits name, coordinates, and timezone. Coordinates are
// validated here, at the data-entry boundary: out-of-range values are
// rejected, never clamped.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req authdomain.UpdateProfileRequest) (*authdomain.User, error) {
	instance := "AuthService.UpdateProfile"

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validation.ValidateStringNotEmpty(*req.Name, "name"); err != nil {
			return nil, err
		}
		user.Name = *req.Name
	}
	if req.Latitude != nil {
		user.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		user.Longitude = req.Longitude
	}
	if user.Latitude != nil && user.Longitude != nil {
		if err := validation.ValidateCoordinates(*user.Latitude, *user.Longitude); err != nil {
			s.logger.Warn(instance, err.Error())
			return nil, err
		}
	}
	if req.Timezone != nil {
		if err := validation.ValidateTimezone(*req.Timezone); err != nil {
			s.logger.Warn(instance, err.Error())
			return nil, err
		}
		user.Timezone = *req.Timezone
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to update profile: %w", err))
		return nil, err
	}

	s.logger.OK(instance, fmt.Sprintf("profile updated [user_id=%s]", userID))
	return user, nil
}

func hashPassword(password string) string {
	hashed := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hashed[:])
}

func checkPassword(hash, password string) bool {
	return hashPassword(password) == hash
}
