// Package middleware holds the echo middleware that runs in front of every route.
package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"antrian/internal/auth"
	"antrian/internal/metrics"
)

var errTokenRevoked = errors.New("token has been revoked")

// LoginPath is the login submission endpoint.
const LoginPath = "/api/auth/login"

// DefaultAssetPrefixes are passed through without looking at the session.
var DefaultAssetPrefixes = []string{"/_next", "/favicon", "/assets", "/healthz", "/metrics", "/swagger"}

// DefaultPublicPaths may be visited without a session.
var DefaultPublicPaths = []string{"/", LoginPath}

// GateConfig configures RequestGate.
type GateConfig struct {
	Tokens  auth.TokenValidator
	Cookies *auth.CookieHelper
	// Revocations is optional; nil disables the denylist check.
	Revocations   auth.RevocationStore
	Logger        logrus.FieldLogger
	AssetPrefixes []string
	PublicPaths   []string
}

type gate struct {
	GateConfig
}

// RequestGate decides for every request whether it passes, is redirected to the
// login page, or is redirected to the signed-in user's landing page.
//
//   - asset paths always pass
//   - public paths pass without a session; the landing entry points ("/" and the
//     login endpoint) send a signed-in user to /{role}
//   - everything else needs a valid session, otherwise the user is sent to
//     /?returnTo=<path>; a rejected token is also cleared from the browser
//
// Verified claims are stored with auth.SetClaims.
func RequestGate(cfg GateConfig) echo.MiddlewareFunc {
	if cfg.AssetPrefixes == nil {
		cfg.AssetPrefixes = DefaultAssetPrefixes
	}
	if cfg.PublicPaths == nil {
		cfg.PublicPaths = DefaultPublicPaths
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Cookies == nil {
		cfg.Cookies = auth.NewCookieHelper(false)
	}
	g := &gate{GateConfig: cfg}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return g.handle(c, next)
		}
	}
}

func (g *gate) handle(c echo.Context, next echo.HandlerFunc) error {
	path := c.Request().URL.Path

	if g.isAsset(path) {
		metrics.RecordGateDecision(metrics.GateAsset)
		return next(c)
	}

	token := auth.Token(c)
	if token == "" {
		if g.isPublic(path) {
			metrics.RecordGateDecision(metrics.GatePublic)
			return next(c)
		}
		metrics.RecordGateDecision(metrics.GateNoToken)
		return c.Redirect(http.StatusFound, "/?"+url.Values{"returnTo": {path}}.Encode())
	}

	if !g.Tokens.Configured() {
		g.Logger.WithField("path", path).Error("JWT_SECRET is not configured; rejecting session")
		metrics.RecordGateDecision(metrics.GateMisconfigured)
		return g.reject(c)
	}

	claims, err := g.Tokens.ValidateToken(token)
	if err == nil && g.Revocations != nil {
		if revoked, _ := g.Revocations.IsRevoked(c.Request().Context(), claims.ID); revoked {
			err = errTokenRevoked
		}
	}
	if err != nil {
		g.Logger.WithError(err).WithField("path", path).Warn("invalid or expired session token")
		metrics.RecordGateDecision(metrics.GateInvalidToken)
		return g.reject(c)
	}

	if isLandingEntry(path) {
		landing := "/"
		if claims.Role != "" {
			landing = "/" + url.PathEscape(claims.Role)
		}
		// a role-less session on "/" would otherwise redirect to itself forever
		if landing != path {
			metrics.RecordGateDecision(metrics.GateLanding)
			return c.Redirect(http.StatusFound, landing)
		}
	}

	auth.SetClaims(c, claims)
	metrics.RecordGateDecision(metrics.GateAllowed)
	return next(c)
}

func (g *gate) reject(c echo.Context) error {
	g.Cookies.Clear(c)
	return c.Redirect(http.StatusFound, "/")
}

func (g *gate) isAsset(path string) bool {
	for _, prefix := range g.AssetPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *gate) isPublic(path string) bool {
	for _, p := range g.PublicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func isLandingEntry(path string) bool {
	return path == "/" || path == LoginPath
}
