package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"antrian/internal/auth"
	"antrian/internal/logger"
	"antrian/internal/model"
	"antrian/internal/repository"
	"antrian/internal/service"
	"antrian/internal/testutil"
)

type mockRevocations struct {
	mock.Mock
}

func (m *mockRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *mockRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type authFixture struct {
	e      *echo.Echo
	tokens *auth.JWTService
	user   model.User
}

func newAuthFixture(t *testing.T, secret string, revocations auth.RevocationStore) *authFixture {
	t.Helper()
	db := testutil.OpenInMemoryDB(t)
	users := repository.NewUserRepository(db)
	details := repository.NewUserDetailRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("jimmy123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{Username: "jimmy", PasswordHash: string(hash), Role: model.RoleDoctor}
	require.NoError(t, users.Create(context.Background(), &user))
	require.NoError(t, details.Upsert(context.Background(), &model.UserDetail{UserID: user.ID, FullName: "Dokter Jimmy"}))

	tokens := auth.NewJWTService(secret)
	svc := service.NewAuthService(users, details, tokens, revocations)
	h := NewAuthHandler(svc, auth.NewCookieHelper(false), logger.Discard())

	e := newEcho()
	e.POST("/api/auth/login", h.Login)
	withClaims := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := tokens.ValidateToken(auth.Token(c)); err == nil {
				auth.SetClaims(c, claims)
			}
			return next(c)
		}
	}
	e.POST("/api/auth/logout", h.Logout, withClaims)
	e.GET("/api/auth/me", h.Me, withClaims)
	return &authFixture{e: e, tokens: tokens, user: user}
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	f := newAuthFixture(t, "handler-secret", nil)

	before := time.Now()
	rec := doJSON(f.e, http.MethodPost, "/api/auth/login", LoginRequest{Username: "jimmy", Password: "jimmy123"})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)

	claims, err := f.tokens.ValidateToken(cookie.Value)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, id)
	assert.Equal(t, "jimmy", claims.Username)
	assert.Equal(t, model.RoleDoctor, claims.Role)
	assert.WithinDuration(t, before.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Role     string `json:"role"`
			Detail   *struct {
				FullName string `json:"full_name"`
			} `json:"detail"`
		} `json:"user"`
	}
	decode(t, rec, &body)
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, f.user.ID, body.User.ID)
	require.NotNil(t, body.User.Detail)
	assert.Equal(t, "Dokter Jimmy", body.User.Detail.FullName)

	raw := rec.Body.String()
	assert.NotContains(t, raw, "jimmy123")
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, cookie.Value)
}

func TestAuthHandler_LoginFailuresSetNoCookie(t *testing.T) {
	f := newAuthFixture(t, "handler-secret", nil)

	wrong := doJSON(f.e, http.MethodPost, "/api/auth/login", LoginRequest{Username: "jimmy", Password: "nope"})
	unknown := doJSON(f.e, http.MethodPost, "/api/auth/login", LoginRequest{Username: "ghost", Password: "jimmy123"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.Equal(t, "INVALID_CREDENTIALS", errorBody(t, wrong).Code)
	assert.Empty(t, wrong.Result().Cookies())
	assert.Empty(t, unknown.Result().Cookies())

	for _, body := range []interface{}{
		LoginRequest{Username: "jimmy"},
		LoginRequest{Password: "jimmy123"},
		map[string]string{},
		"not json",
	} {
		rec := doJSON(f.e, http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestAuthHandler_LoginWithoutSecret(t *testing.T) {
	f := newAuthFixture(t, "", nil)

	rec := doJSON(f.e, http.MethodPost, "/api/auth/login", LoginRequest{Username: "jimmy", Password: "jimmy123"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SERVER_MISCONFIGURED", errorBody(t, rec).Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_LogoutRevokesAndClears(t *testing.T) {
	store := new(mockRevocations)
	f := newAuthFixture(t, "handler-secret", store)

	token, claims, err := f.tokens.GenerateToken(f.user.ID, "jimmy", model.RoleDoctor)
	require.NoError(t, err)
	store.On("Revoke", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	rec := doJSON(f.e, http.MethodPost, "/api/auth/logout", nil, &http.Cookie{Name: auth.SessionCookieName, Value: token})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
	store.AssertExpectations(t)
}

func TestAuthHandler_Me(t *testing.T) {
	f := newAuthFixture(t, "handler-secret", nil)
	token, _, err := f.tokens.GenerateToken(f.user.ID, "jimmy", model.RoleDoctor)
	require.NoError(t, err)

	rec := doJSON(f.e, http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: auth.SessionCookieName, Value: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var body SessionResponse
	decode(t, rec, &body)
	assert.Equal(t, "jimmy", body.Username)
	assert.Equal(t, model.RoleDoctor, body.Role)
	assert.True(t, strings.TrimSpace(body.ID) != "")

	rec = doJSON(f.e, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
