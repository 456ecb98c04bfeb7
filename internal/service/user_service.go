package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "antrian/internal/errors"
	"antrian/internal/model"
	"antrian/internal/repository"
)

// CreateUserInput is the data needed to register a staff account.
type CreateUserInput struct {
	Username    string
	Password    string
	Role        string
	FullName    string
	PhoneNumber *string
	ServiceID   *uint
}

// UserWithDetail is a user together with its optional profile.
type UserWithDetail struct {
	model.User
	Detail *model.UserDetail `json:"detail"`
}

// UserService exposes staff account operations.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*UserWithDetail, error)
	GetUser(ctx context.Context, id uint) (*UserWithDetail, error)
	ListUsers(ctx context.Context) ([]UserWithDetail, error)
	ResetPassword(ctx context.Context, id uint, password string) error
	DeleteUser(ctx context.Context, id uint) (int64, error)
}

type userService struct {
	users    repository.UserRepository
	details  repository.UserDetailRepository
	services repository.ServiceRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, details repository.UserDetailRepository, services repository.ServiceRepository) UserService {
	return &userService{users: users, details: details, services: services}
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*UserWithDetail, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" || in.FullName == "" {
		return nil, fmt.Errorf("%w: username, password, role and full_name are required", apperrors.ErrInvalidRequest)
	}

	existing, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("%w: username %q already taken", apperrors.ErrConflict, in.Username)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("check username: %w", err)
	}

	if in.ServiceID != nil {
		if _, err := s.services.FindByID(ctx, *in.ServiceID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: layanan_id %d does not exist", apperrors.ErrInvalidRequest, *in.ServiceID)
			}
			return nil, fmt.Errorf("check layanan: %w", err)
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: in.Username, PasswordHash: hash, Role: in.Role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	detail := &model.UserDetail{
		UserID:      user.ID,
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		ServiceID:   in.ServiceID,
	}
	if err := s.details.Upsert(ctx, detail); err != nil {
		// keep the pair consistent; the detail row goes with the user via cascade
		if _, delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			return nil, fmt.Errorf("save user detail: %w (rollback: %v)", err, delErr)
		}
		return nil, fmt.Errorf("save user detail: %w", err)
	}

	return &UserWithDetail{User: *user, Detail: detail}, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*UserWithDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := s.details.FindByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user detail: %w", err)
	}
	return &UserWithDetail{User: *user, Detail: detail}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]UserWithDetail, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	details, err := s.details.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list user details: %w", err)
	}

	out := make([]UserWithDetail, 0, len(users))
	for _, u := range users {
		item := UserWithDetail{User: u}
		if d, ok := details[u.ID]; ok {
			d := d
			item.Detail = &d
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *userService) ResetPassword(ctx context.Context, id uint, password string) error {
	if id == 0 || password == "" {
		return fmt.Errorf("%w: id and password are required", apperrors.ErrInvalidRequest)
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeleteUser removes the user and, through the foreign key, its detail.
func (s *userService) DeleteUser(ctx context.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("%w: id is required", apperrors.ErrInvalidRequest)
	}
	rows, err := s.users.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return rows, nil
}
