package model

// UserDetail holds profile data for a user. There is at most one row per user.
type UserDetail struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	UserID      uint    `json:"-" gorm:"not null;uniqueIndex:idx_detail_users_user_id"`
	FullName    string  `json:"full_name" gorm:"size:255;not null"`
	PhoneNumber *string `json:"phone_number" gorm:"size:50"`
	ServiceID   *uint   `json:"layanan_id" gorm:"column:layanan_id"`

	User    *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Service *Service `json:"-" gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL"`
}

// TableName returns the database table name for the UserDetail model.
func (UserDetail) TableName() string {
	return "detail_users"
}
