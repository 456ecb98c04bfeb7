package repository

import (
	"context"

	"gorm.io/gorm"

	"antrian/internal/model"
)

// QueueRepository defines persistence operations for queue entries (antrian).
type QueueRepository interface {
	List(ctx context.Context, serviceID uint) ([]model.QueueEntry, error)
	FindByID(ctx context.Context, id uint) (*model.QueueEntry, error)
	// Enqueue assigns the next number within the entry's service and stores it.
	Enqueue(ctx context.Context, entry *model.QueueEntry) error
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type queueRepository struct {
	db *gorm.DB
}

// NewQueueRepository builds a GORM-backed repository.
func NewQueueRepository(db *gorm.DB) QueueRepository {
	return &queueRepository{db: db}
}

// List returns entries in queue order. A zero serviceID lists every service.
func (r *queueRepository) List(ctx context.Context, serviceID uint) ([]model.QueueEntry, error) {
	entries := []model.QueueEntry{}
	q := r.db.WithContext(ctx).Order("layanan_id").Order("nomor_antrian")
	if serviceID != 0 {
		q = q.Where("layanan_id = ?", serviceID)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *queueRepository) FindByID(ctx context.Context, id uint) (*model.QueueEntry, error) {
	var entry model.QueueEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, notFound(err, "antrian %d", id)
	}
	return &entry, nil
}

func (r *queueRepository) Enqueue(ctx context.Context, entry *model.QueueEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&model.QueueEntry{}).
			Where("layanan_id = ?", entry.ServiceID).
			Select("COALESCE(MAX(nomor_antrian), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		entry.Number = last + 1
		if entry.Status == "" {
			entry.Status = model.QueueStatusWaiting
		}
		return tx.Create(entry).Error
	})
}

func (r *queueRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.QueueEntry{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *queueRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.QueueEntry{}, id)
	return res.RowsAffected, res.Error
}
