package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/hash"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/tokens"
)

// ErrInvalidCredentials covers both the unknown-username and wrong-password
// cases so callers cannot enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is compared against when the username is unknown, so both
// failure paths do the same amount of bcrypt work.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Store     store.Store
	JWTSecret []byte
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.Admin
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	admin, err := s.Store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			hash.CheckPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "admin lookup failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := tokens.NewAccessToken(admin.ID, admin.Username, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Admin:     admin,
	}, nil
}
