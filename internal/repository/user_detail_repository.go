package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"antrian/internal/model"
)

// UserDetailRepository defines persistence operations for user profiles.
type UserDetailRepository interface {
	// FindByUserID returns nil without error when the user has no detail row.
	FindByUserID(ctx context.Context, userID uint) (*model.UserDetail, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) (map[uint]model.UserDetail, error)
	Upsert(ctx context.Context, detail *model.UserDetail) error
}

type userDetailRepository struct {
	db *gorm.DB
}

// NewUserDetailRepository builds a GORM-backed repository.
func NewUserDetailRepository(db *gorm.DB) UserDetailRepository {
	return &userDetailRepository{db: db}
}

func (r *userDetailRepository) FindByUserID(ctx context.Context, userID uint) (*model.UserDetail, error) {
	var detail model.UserDetail
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *userDetailRepository) ListByUserIDs(ctx context.Context, userIDs []uint) (map[uint]model.UserDetail, error) {
	out := make(map[uint]model.UserDetail, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var details []model.UserDetail
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&details).Error; err != nil {
		return nil, err
	}
	for _, d := range details {
		out[d.UserID] = d
	}
	return out, nil
}

// Upsert inserts the detail or replaces the existing row for the same user.
func (r *userDetailRepository) Upsert(ctx context.Context, detail *model.UserDetail) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone_number", "layanan_id"}),
	}).Create(detail).Error
}
