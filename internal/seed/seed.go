// Package seed loads the demo staff accounts and clinic services.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	apperrors "antrian/internal/errors"
	"antrian/internal/model"
	"antrian/internal/repository"
	"antrian/internal/service"
)

// Account is a staff account created by the seeder.
type Account struct {
	Username    string
	Password    string
	Role        string
	FullName    string
	PhoneNumber string
	// ServiceName links the account to a clinic service; empty means none.
	ServiceName string
}

// DefaultServices are the clinic services every installation starts with.
var DefaultServices = []string{"Poli Umum", "Poli Gigi"}

// DefaultAccounts are the demo staff accounts.
var DefaultAccounts = []Account{
	{Username: "didi", Password: "didi123", Role: model.RoleAdmin, FullName: "Administrator", PhoneNumber: "081234567890"},
	{Username: "jimmy", Password: "jimmy123", Role: model.RoleDoctor, FullName: "Dokter Jimmy", PhoneNumber: "081234567891", ServiceName: "Poli Gigi"},
	{Username: "adit", Password: "adit123", Role: model.RoleDoctor, FullName: "Dokter Adit", PhoneNumber: "081234567892", ServiceName: "Poli Umum"},
}

// Result reports what a seed run changed.
type Result struct {
	UsersCreated  int
	UsersExisting int
	Services      int
}

// Seeder writes the default data. Running it twice is safe: existing users keep
// their password, details are overwritten, services are matched by name.
type Seeder struct {
	users    repository.UserRepository
	details  repository.UserDetailRepository
	services repository.ServiceRepository
	log      logrus.FieldLogger
}

// New creates a Seeder.
func New(users repository.UserRepository, details repository.UserDetailRepository, services repository.ServiceRepository, log logrus.FieldLogger) *Seeder {
	return &Seeder{users: users, details: details, services: services, log: log}
}

// Run seeds the given services and accounts.
func (s *Seeder) Run(ctx context.Context, serviceNames []string, accounts []Account) (Result, error) {
	var res Result

	ids := make(map[string]uint, len(serviceNames))
	for _, name := range serviceNames {
		svc, err := s.services.Ensure(ctx, name)
		if err != nil {
			return res, fmt.Errorf("ensure layanan %q: %w", name, err)
		}
		ids[name] = svc.ID
		res.Services++
	}

	for _, acc := range accounts {
		user, created, err := s.ensureUser(ctx, acc)
		if err != nil {
			return res, err
		}
		if created {
			res.UsersCreated++
		} else {
			res.UsersExisting++
		}

		detail := &model.UserDetail{UserID: user.ID, FullName: acc.FullName}
		if acc.PhoneNumber != "" {
			phone := acc.PhoneNumber
			detail.PhoneNumber = &phone
		}
		if acc.ServiceName != "" {
			id, ok := ids[acc.ServiceName]
			if !ok {
				return res, fmt.Errorf("account %q references unknown layanan %q", acc.Username, acc.ServiceName)
			}
			detail.ServiceID = &id
		}
		if err := s.details.Upsert(ctx, detail); err != nil {
			return res, fmt.Errorf("upsert detail for %q: %w", acc.Username, err)
		}
		s.log.WithFields(logrus.Fields{"username": acc.Username, "role": acc.Role, "created": created}).Info("seeded account")
	}
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, acc Account) (*model.User, bool, error) {
	existing, err := s.users.FindByUsername(ctx, acc.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("look up %q: %w", acc.Username, err)
	}

	hash, err := service.HashPassword(acc.Password)
	if err != nil {
		return nil, false, err
	}
	user := &model.User{Username: acc.Username, PasswordHash: hash, Role: acc.Role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create %q: %w", acc.Username, err)
	}
	return user, true, nil
}
