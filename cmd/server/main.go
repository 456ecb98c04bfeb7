package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"antrian/internal/auth"
	"antrian/internal/cache"
	"antrian/internal/config"
	"antrian/internal/db"
	"antrian/internal/handler"
	"antrian/internal/logger"
	"antrian/internal/repository"
	"antrian/internal/router"
	"antrian/internal/service"
)

// @title Antrian Klinik API
// @version 1.0
// @description Clinic queue management API: customers, services, queue numbers and staff accounts behind a cookie session.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info").WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel)
	log.Info(cfg.String())
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set; logins and existing sessions will be rejected")
	}

	gormDB, err := db.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	if cacheClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable; token revocation disabled until it recovers")
		}
		cancel()
		defer cacheClient.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	detailRepo := repository.NewUserDetailRepository(gormDB)
	serviceRepo := repository.NewServiceRepository(gormDB)
	customerRepo := repository.NewCustomerRepository(gormDB)
	queueRepo := repository.NewQueueRepository(gormDB)
	gateway := repository.NewGateway(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	cookies := auth.NewCookieHelper(cfg.IsProduction())
	var revocations auth.RevocationStore
	if cacheClient != nil {
		revocations = auth.NewTokenStore(cacheClient)
	}

	// Services
	authService := service.NewAuthService(userRepo, detailRepo, jwtService, revocations)
	userService := service.NewUserService(userRepo, detailRepo, serviceRepo)
	queueService := service.NewQueueService(queueRepo, customerRepo, serviceRepo, gateway)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, router.Security{
		Tokens:      jwtService,
		Cookies:     cookies,
		Revocations: revocations,
	}, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, cookies, log),
		Customers: handler.NewCustomerHandler(customerRepo, log),
		Services:  handler.NewServiceHandler(serviceRepo, log),
		Queue:     handler.NewQueueHandler(queueService, log),
		Users:     handler.NewUserHandler(userService, log),
		Pages:     handler.NewPageHandler(cfg.StaticDir),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
