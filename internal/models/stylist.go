package models

import (
	"time"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
)

type Stylist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Conta de acesso opcional (estilista que também faz login)
	UserID *uint `json:"user_id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Bio      string `gorm:"size:255" json:"bio"`

	YearsOfExperience int        `json:"years_of_experience"`
	Specialties       StringList `gorm:"type:jsonb" json:"specialties"`

	ProfileImageURL string     `gorm:"size:255" json:"profile_image_url"`
	PortfolioImages StringList `gorm:"type:jsonb" json:"portfolio_images"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Expediente semanal: weekday -> blocos HH:MM disjuntos
	WorkingHours schedule.WeeklyHours `gorm:"type:jsonb" json:"working_hours"`

	Services []Service `gorm:"many2many:stylist_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
