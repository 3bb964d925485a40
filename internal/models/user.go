package models

import "time"

// ===============================
// Papéis de usuário
// ===============================

const (
	RoleClient     = "client"
	RoleSalonOwner = "salon_owner"
	RoleStylist    = "stylist"
	RoleAdmin      = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role       string `gorm:"size:20;default:'client'" json:"role"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
	IsVerified bool   `gorm:"default:false" json:"is_verified"`

	ProfileImageURL string `gorm:"size:255" json:"profile_image_url"`
	Location        string `gorm:"size:100" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
