package router

import (
	"net/http"
	"path/filepath"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"antrian/docs"
	"antrian/internal/auth"
	"antrian/internal/config"
	apperrors "antrian/internal/errors"
	"antrian/internal/handler"
	"antrian/internal/metrics"
	"antrian/internal/middleware"
	"antrian/internal/model"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customers *handler.CustomerHandler
	Services  *handler.ServiceHandler
	Queue     *handler.QueueHandler
	Users     *handler.UserHandler
	Pages     *handler.PageHandler
}

// Security carries the session components shared by the request gate and the
// /api group.
type Security struct {
	Tokens      auth.TokenValidator
	Cookies     *auth.CookieHelper
	Revocations auth.RevocationStore
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log logrus.FieldLogger, sec Security, h Handlers) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestGate(middleware.GateConfig{
		Tokens:      sec.Tokens,
		Cookies:     sec.Cookies,
		Revocations: sec.Revocations,
		Logger:      log,
	}))

	e.Validator = handler.NewValidator()

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
	e.File("/favicon.ico", filepath.Join(cfg.StaticDir, "favicon.ico"))

	// UI shell: landing page and one page tree per role
	e.GET("/", h.Pages.Shell)
	e.GET("/:role", h.Pages.Shell)
	e.GET("/:role/*", h.Pages.Shell)

	e.POST(middleware.LoginPath, h.Auth.Login, loginRateLimiter(cfg.LoginRateLimit))

	api := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + auth.SessionCookieName,
		ContextKey:  auth.ContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := sec.Tokens.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if sec.Revocations != nil {
				if revoked, _ := sec.Revocations.IsRevoked(c.Request().Context(), claims.ID); revoked {
					return nil, apperrors.ErrInvalidToken
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		},
	}))

	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me)

	api.GET("/customers", h.Customers.List)
	api.GET("/customers/:id", h.Customers.Get)
	api.POST("/customers", h.Customers.Create)
	api.PUT("/customers", h.Customers.Update)
	api.DELETE("/customers", h.Customers.Delete)

	api.GET("/layanan", h.Services.List)
	api.POST("/layanan", h.Services.Create)
	api.PUT("/layanan", h.Services.Update)
	api.DELETE("/layanan", h.Services.Delete)

	api.GET("/antrian", h.Queue.List)
	api.GET("/antrian/summary", h.Queue.Summary)
	api.POST("/antrian", h.Queue.Create)
	api.POST("/antrian/next", h.Queue.CallNext)
	api.PUT("/antrian", h.Queue.Update)
	api.DELETE("/antrian", h.Queue.Delete)

	users := api.Group("/users", middleware.RequireRole(model.RoleAdmin))
	users.GET("", h.Users.ListUsers)
	users.GET("/:id", h.Users.GetUser)
	users.POST("", h.Users.CreateUser)
	users.PUT("/password", h.Users.ResetPassword)
	users.DELETE("", h.Users.DeleteUser)
}

// loginRateLimiter throttles login attempts per client IP.
func loginRateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "unable to identify client",
				Code:  "FORBIDDEN",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RecordLogin(metrics.LoginRateLimited)
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many login attempts, try again later",
				Code:  "RATE_LIMITED",
			})
		},
	})
}
