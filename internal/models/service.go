package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50;not null" json:"category"`

	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	// Atendimento a domicílio (taxa opcional)
	AvailableAtHome bool     `gorm:"default:false" json:"available_at_home"`
	HomeServiceFee  *float64 `json:"home_service_fee"`

	AllowsOnlineBooking bool   `gorm:"default:true" json:"allows_online_booking"`
	ImageURL            string `gorm:"size:255" json:"image_url"`
	IsActive            bool   `gorm:"default:true" json:"is_active"`

	Stylists []Stylist `gorm:"many2many:stylist_services;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
