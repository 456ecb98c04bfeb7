package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	issued := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewJWTService("test-secret", WithClock(func() time.Time { return issued }))

	token, claims, err := svc.GenerateToken(7, "jimmy", "dokter")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	id, err := got.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "jimmy", got.Username)
	assert.Equal(t, "dokter", got.Role)
	assert.Equal(t, issued.Add(time.Hour).Unix(), got.ExpiresAt.Unix())
	assert.Equal(t, issued.Unix(), got.IssuedAt.Unix())
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	now := time.Now()
	svc := NewJWTService("test-secret")
	other := NewJWTService("other-secret")
	expired := NewJWTService("test-secret", WithClock(func() time.Time { return now.Add(-2 * time.Hour) }))

	otherToken, _, err := other.GenerateToken(1, "didi", "admin")
	require.NoError(t, err)
	expiredToken, _, err := expired.GenerateToken(1, "didi", "admin")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512Token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", otherToken},
		{"expired", expiredToken},
		{"alg none", noneToken},
		{"other hmac alg", hs512Token},
		{"missing exp", noExpiry},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_Unconfigured(t *testing.T) {
	svc := NewJWTService("")
	assert.False(t, svc.Configured())

	_, _, err := svc.GenerateToken(1, "didi", "admin")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	token, _, err := NewJWTService("s").GenerateToken(1, "didi", "admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestClaims_UserID_InvalidSubject(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.Error(t, err)
}
