package model

import "time"

// Customer is a patient registered at the clinic.
type Customer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"nama" gorm:"column:nama;size:255;not null"`
	Phone        string    `json:"nomor_telepon" gorm:"column:nomor_telepon;size:50;not null"`
	Address      *string   `json:"alamat" gorm:"column:alamat"`
	RegisteredAt time.Time `json:"waktu_daftar" gorm:"column:waktu_daftar;autoCreateTime"`
}

// TableName returns the database table name for the Customer model.
func (Customer) TableName() string {
	return "customer"
}
