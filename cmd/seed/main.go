package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"antrian/internal/config"
	"antrian/internal/db"
	"antrian/internal/logger"
	"antrian/internal/repository"
	"antrian/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info").WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}
	log.WithField("driver", cfg.DBDriver).Info("database ready")

	seeder := seed.New(
		repository.NewUserRepository(gormDB),
		repository.NewUserDetailRepository(gormDB),
		repository.NewServiceRepository(gormDB),
		log,
	)
	res, err := seeder.Run(context.Background(), seed.DefaultServices, seed.DefaultAccounts)
	if err != nil {
		log.WithError(err).Error("seed failed")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"users_created":  res.UsersCreated,
		"users_existing": res.UsersExisting,
		"services":       res.Services,
	}).Info("seed completed")
}
