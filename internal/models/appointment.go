package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referência pública (exposta para o cliente, desacoplada da PK)
	BookingRef string `gorm:"size:36;uniqueIndex" json:"booking_ref"`

	ClientID uint `json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StylistID uint    `gorm:"index" json:"stylist_id"`
	Stylist   Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status          string `gorm:"size:20;default:'pending'" json:"status"`
	AppointmentType string `gorm:"size:20;default:'in_salon'" json:"appointment_type"`

	// Obrigatório quando o atendimento é a domicílio
	Address string `gorm:"size:255" json:"address"`

	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"original_price"`
	DiscountAmount float64 `gorm:"default:0" json:"discount_amount"`
	AdditionalFees float64 `gorm:"default:0" json:"additional_fees"`
	IsPaid         bool    `gorm:"default:false" json:"is_paid"`

	Notes              string `gorm:"size:255" json:"notes"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
