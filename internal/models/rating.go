package models

import "time"

// ===============================
// Alvos de avaliação
// ===============================

const (
	RatingTargetSalon   = "salon"
	RatingTargetService = "service"
	RatingTargetStylist = "stylist"
)

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	TargetType string `gorm:"size:20;not null;index:idx_rating_target" json:"target_type"`
	TargetID   uint   `gorm:"not null;index:idx_rating_target" json:"target_id"`

	// Vínculo opcional com o agendamento avaliado
	AppointmentID *uint `json:"appointment_id"`

	OverallScore float64 `gorm:"not null" json:"overall_score"`

	CleanlinessScore     *float64 `json:"cleanliness_score"`
	ServiceQualityScore  *float64 `json:"service_quality_score"`
	ValueForMoneyScore   *float64 `json:"value_for_money_score"`
	ProfessionalismScore *float64 `json:"professionalism_score"`

	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
