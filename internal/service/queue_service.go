package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "antrian/internal/errors"
	"antrian/internal/model"
	"antrian/internal/repository"
)

const (
	queueSummarySQL = `SELECT l.id AS service_id, l.nama_layanan AS service_name, a.status AS status, COUNT(*) AS total
FROM antrian a
JOIN layanan l ON l.id = a.layanan_id
GROUP BY l.id, l.nama_layanan, a.status
ORDER BY l.id, a.status`

	nextWaitingSQL = `SELECT id FROM antrian
WHERE layanan_id = ? AND status = ?
ORDER BY nomor_antrian
LIMIT 1`

	claimEntrySQL = `UPDATE antrian SET status = ? WHERE id = ? AND status = ?`
)

// QueueService manages queue entries (antrian).
type QueueService interface {
	List(ctx context.Context, serviceID uint) ([]model.QueueEntry, error)
	Enqueue(ctx context.Context, customerID, serviceID uint) (*model.QueueEntry, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	Summary(ctx context.Context) ([]model.QueueSummary, error)
	// CallNext marks the lowest-numbered waiting entry of a service as called.
	CallNext(ctx context.Context, serviceID uint) (*model.QueueEntry, error)
}

type queueService struct {
	queue     repository.QueueRepository
	customers repository.CustomerRepository
	services  repository.ServiceRepository
	gateway   repository.Gateway
}

// NewQueueService builds a QueueService.
func NewQueueService(
	queue repository.QueueRepository,
	customers repository.CustomerRepository,
	services repository.ServiceRepository,
	gateway repository.Gateway,
) QueueService {
	return &queueService{
		queue:     queue,
		customers: customers,
		services:  services,
		gateway:   gateway,
	}
}

func (s *queueService) List(ctx context.Context, serviceID uint) ([]model.QueueEntry, error) {
	return s.queue.List(ctx, serviceID)
}

func (s *queueService) Enqueue(ctx context.Context, customerID, serviceID uint) (*model.QueueEntry, error) {
	if customerID == 0 || serviceID == 0 {
		return nil, fmt.Errorf("%w: customer_id and layanan_id are required", apperrors.ErrInvalidRequest)
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, referenceError(err, "customer_id", customerID)
	}
	if _, err := s.services.FindByID(ctx, serviceID); err != nil {
		return nil, referenceError(err, "layanan_id", serviceID)
	}

	entry := &model.QueueEntry{CustomerID: customerID, ServiceID: serviceID}
	if err := s.queue.Enqueue(ctx, entry); err != nil {
		return nil, fmt.Errorf("enqueue: %w", err)
	}
	return entry, nil
}

func (s *queueService) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	if id == 0 || status == "" {
		return 0, fmt.Errorf("%w: id and status are required", apperrors.ErrInvalidRequest)
	}
	return s.queue.UpdateStatus(ctx, id, status)
}

func (s *queueService) Delete(ctx context.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("%w: id is required", apperrors.ErrInvalidRequest)
	}
	return s.queue.Delete(ctx, id)
}

func (s *queueService) Summary(ctx context.Context) ([]model.QueueSummary, error) {
	rows := []model.QueueSummary{}
	if err := s.gateway.Query(ctx, &rows, queueSummarySQL); err != nil {
		return nil, fmt.Errorf("queue summary: %w", err)
	}
	return rows, nil
}

func (s *queueService) CallNext(ctx context.Context, serviceID uint) (*model.QueueEntry, error) {
	if serviceID == 0 {
		return nil, fmt.Errorf("%w: layanan_id is required", apperrors.ErrInvalidRequest)
	}

	var ids []uint
	if err := s.gateway.Query(ctx, &ids, nextWaitingSQL, serviceID, model.QueueStatusWaiting); err != nil {
		return nil, fmt.Errorf("find next entry: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no waiting entry for layanan %d: %w", serviceID, apperrors.ErrNotFound)
	}

	rows, err := s.gateway.Exec(ctx, claimEntrySQL, model.QueueStatusCalled, ids[0], model.QueueStatusWaiting)
	if err != nil {
		return nil, fmt.Errorf("call entry %d: %w", ids[0], err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: entry %d was called concurrently", apperrors.ErrConflict, ids[0])
	}
	return s.queue.FindByID(ctx, ids[0])
}

func referenceError(err error, field string, id uint) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", apperrors.ErrInvalidRequest, field, id)
	}
	return fmt.Errorf("check %s: %w", field, err)
}
