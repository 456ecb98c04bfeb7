package auth

import "github.com/labstack/echo/v4"

// ContextKey is the echo context key holding the verified *Claims.
const ContextKey = "session"

// SetClaims stores verified claims on the request context.
func SetClaims(c echo.Context, claims *Claims) {
	c.Set(ContextKey, claims)
}

// ClaimsFrom returns the claims stored by the request gate, if any.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}
