package repository

import (
	"context"

	"gorm.io/gorm"

	"antrian/internal/model"
)

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) error
	// Update and Delete report the number of affected rows; zero is not an error.
	Update(ctx context.Context, customer *model.Customer) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository builds a GORM-backed repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFound(err, "customer %d", id)
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update overwrites the editable columns; a nil address clears it.
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"nama":          customer.Name,
			"nomor_telepon": customer.Phone,
			"alamat":        customer.Address,
		})
	return res.RowsAffected, res.Error
}

func (r *customerRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)
	return res.RowsAffected, res.Error
}
