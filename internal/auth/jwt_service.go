package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenExpiry is the lifetime of a session token and of its cookie.
const SessionTokenExpiry = time.Hour

// ErrSecretNotConfigured is returned when tokens are requested without a signing secret.
var ErrSecretNotConfigured = errors.New("jwt secret not configured")

// Claims represents the session token payload. Subject holds the user id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Configured() bool
	GenerateToken(userID uint, username, role string) (string, *Claims, error)
}

// TokenValidator verifies session tokens.
type TokenValidator interface {
	Configured() bool
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// Option customizes a JWTService.
type Option func(*JWTService)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

// WithExpiry overrides SessionTokenExpiry.
func WithExpiry(d time.Duration) Option {
	return func(s *JWTService) { s.expiry = d }
}

// NewJWTService creates a new JWT service with the given secret. An empty secret
// yields a service that refuses to sign or verify anything.
func NewJWTService(secret string, opts ...Option) *JWTService {
	s := &JWTService{
		secret: []byte(secret),
		expiry: SessionTokenExpiry,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a signing secret is present.
func (s *JWTService) Configured() bool {
	return len(s.secret) > 0
}

// GenerateToken signs an HS256 token for the user.
func (s *JWTService) GenerateToken(userID uint, username, role string) (string, *Claims, error) {
	if !s.Configured() {
		return "", nil, ErrSecretNotConfigured
	}
	now := s.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// ValidateToken validates a JWT token and returns the claims. Tokens signed with
// any algorithm other than HS256 are rejected.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if !s.Configured() {
		return nil, ErrSecretNotConfigured
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
