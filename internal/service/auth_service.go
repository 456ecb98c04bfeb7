package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"antrian/internal/auth"
	apperrors "antrian/internal/errors"
	"antrian/internal/model"
	"antrian/internal/repository"
)

const bcryptCost = 10

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real comparison so an unknown
// username is not distinguishable by timing.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// UserSummary is the public view of a signed-in user.
type UserSummary struct {
	ID       uint              `json:"id"`
	Username string            `json:"username"`
	Role     string            `json:"role"`
	Detail   *model.UserDetail `json:"detail"`
}

// LoginResult carries the issued session token and the user it belongs to.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	users       repository.UserRepository
	details     repository.UserDetailRepository
	tokens      auth.TokenIssuer
	revocations auth.RevocationStore
	now         func() time.Time
}

// NewAuthService creates a new authentication service. revocations may be nil, in
// which case Logout only affects the client.
func NewAuthService(
	users repository.UserRepository,
	details repository.UserDetailRepository,
	tokens auth.TokenIssuer,
	revocations auth.RevocationStore,
) AuthService {
	return &authService{
		users:       users,
		details:     details,
		tokens:      tokens,
		revocations: revocations,
		now:         time.Now,
	}
}

// Login verifies the credentials and issues a session token.
//
// The signing secret is checked after the user lookup and before any password
// comparison, so no credential is ever evaluated by a server that cannot sign.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidRequest)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.tokens.Configured() {
		return nil, apperrors.ErrServerMisconfigured
	}

	if user == nil {
		compareDummy(password)
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	detail, err := s.details.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load user detail: %w", err)
	}

	token, claims, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		if errors.Is(err, auth.ErrSecretNotConfigured) {
			return nil, apperrors.ErrServerMisconfigured
		}
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User: UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Detail:   detail,
		},
	}, nil
}

// Logout denylists the token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || s.revocations == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// HashPassword returns the bcrypt hash stored for a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most %d bytes", apperrors.ErrInvalidRequest, maxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
