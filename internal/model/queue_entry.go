package model

// Queue statuses. Status is free text in storage; these are the values the
// application itself writes.
const (
	QueueStatusWaiting = "menunggu"
	QueueStatusCalled  = "dipanggil"
	QueueStatusDone    = "selesai"
)

// QueueEntry is a customer's place in a service queue.
type QueueEntry struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CustomerID uint   `json:"customer_id" gorm:"not null;index"`
	Number     int    `json:"nomor_antrian" gorm:"column:nomor_antrian;not null"`
	ServiceID  uint   `json:"layanan_id" gorm:"column:layanan_id;not null;index"`
	Status     string `json:"status" gorm:"size:50;not null;default:menunggu"`

	Customer *Customer `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Service  *Service  `json:"-" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for the QueueEntry model.
func (QueueEntry) TableName() string {
	return "antrian"
}

// QueueSummary is the number of queue entries per service and status.
type QueueSummary struct {
	ServiceID   uint   `json:"layanan_id"`
	ServiceName string `json:"nama_layanan"`
	Status      string `json:"status"`
	Total       int64  `json:"total"`
}
