package model

import "time"

// Roles known to the application. The role string also names the landing page
// a signed-in user is sent to (/{role}).
const (
	RoleAdmin  = "admin"
	RoleDoctor = "dokter"
)

// User represents a staff member who can sign in.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
