package models

import "time"

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Address    string `gorm:"size:255;not null" json:"address"`
	City       string `gorm:"size:100;not null" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`

	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Website string `gorm:"size:255" json:"website"`

	LogoURL string `gorm:"size:255" json:"logo_url"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
