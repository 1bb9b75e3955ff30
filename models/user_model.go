package models

import (
	"gorm.io/gorm"
)

// User hanya dipakai untuk login teknisi/admin; identitasnya menjadi
// actor_identity pada custody-priority sourcing.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;not null" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:technician"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
