package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookieHelper writes and clears the session cookie.
type CookieHelper struct {
	secure bool
	maxAge time.Duration
}

// NewCookieHelper returns a helper; secure adds the Secure attribute.
func NewCookieHelper(secure bool) *CookieHelper {
	return &CookieHelper{secure: secure, maxAge: SessionTokenExpiry}
}

// SetSession stores the token in an HttpOnly cookie scoped to the whole site.
func (h *CookieHelper) SetSession(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (h *CookieHelper) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the session token from the request, or "" when absent.
func Token(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
