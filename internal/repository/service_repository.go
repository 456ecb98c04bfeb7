package repository

import (
	"context"

	"gorm.io/gorm"

	"antrian/internal/model"
)

// ServiceRepository defines persistence operations for clinic services (layanan).
type ServiceRepository interface {
	List(ctx context.Context) ([]model.Service, error)
	FindByID(ctx context.Context, id uint) (*model.Service, error)
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, service *model.Service) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	// Ensure returns the service with the given name, creating it when missing.
	Ensure(ctx context.Context, name string) (*model.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository builds a GORM-backed repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List(ctx context.Context) ([]model.Service, error) {
	services := []model.Service{}
	if err := r.db.WithContext(ctx).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, notFound(err, "layanan %d", id)
	}
	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return duplicate(err, "layanan %q", service.Name)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", service.ID).
		Update("nama_layanan", service.Name)
	if res.Error != nil {
		return 0, duplicate(res.Error, "layanan %q", service.Name)
	}
	return res.RowsAffected, nil
}

// Delete removes the service. Queue entries for it are deleted and user details
// lose their service link, both through foreign keys.
func (r *serviceRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Service{}, id)
	return res.RowsAffected, res.Error
}

func (r *serviceRepository) Ensure(ctx context.Context, name string) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where(model.Service{Name: name}).FirstOrCreate(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}
