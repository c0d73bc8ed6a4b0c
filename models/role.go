package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Role represents a named set of permissions
type Role struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string       `json:"description"`
	IsSystem    bool         `gorm:"default:false" json:"is_system"` // System roles cannot be updated or deleted
	Permissions []Permission `gorm:"-" json:"permissions"`           // Not stored directly, use PermissionsJSON
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Helper field for GORM (stored as JSON in database)
	PermissionsJSON string `gorm:"column:permissions;type:text" json:"-"`
}

// TableName specifies the table name
func (Role) TableName() string {
	return "roles"
}

// BeforeSave hook to serialize permissions
func (r *Role) BeforeSave(tx *gorm.DB) error {
	return r.serializePermissions()
}

// AfterFind hook to deserialize permissions
func (r *Role) AfterFind(tx *gorm.DB) error {
	return r.deserializePermissions()
}

// serializePermissions converts Permissions slice to JSON string
func (r *Role) serializePermissions() error {
	perms := r.Permissions
	if perms == nil {
		perms = []Permission{}
	}
	data, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	r.PermissionsJSON = string(data)
	return nil
}

// deserializePermissions converts JSON string to Permissions slice
func (r *Role) deserializePermissions() error {
	if r.PermissionsJSON == "" {
		r.Permissions = []Permission{}
		return nil
	}
	return json.Unmarshal([]byte(r.PermissionsJSON), &r.Permissions)
}
