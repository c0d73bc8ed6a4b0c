package models

import (
	"time"

	"github.com/techmaster-vietnam/kidsenglish/utils"
	"gorm.io/gorm"
)

// User represents a user in the system.
// User không bao giờ bị xóa cứng, chỉ chuyển trạng thái Active.
type User struct {
	ID        string    `gorm:"type:varchar(12);primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Hidden from JSON
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	Active    bool      `gorm:"not null;default:true" json:"is_active"`
	RoleID    *uint     `gorm:"index" json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Role *Role `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT" json:"role,omitempty"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to generate ID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID != "" {
		return nil
	}
	id, err := utils.GenerateID()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}
