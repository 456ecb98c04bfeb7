package model

// Service is a clinic service line (poli) that doctors belong to and patients queue for.
type Service struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"nama_layanan" gorm:"column:nama_layanan;size:255;uniqueIndex;not null"`
}

// TableName returns the database table name for the Service model.
func (Service) TableName() string {
	return "layanan"
}
