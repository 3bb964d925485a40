package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/httpresp"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

type RatingHandler struct {
	db *gorm.DB
}

func NewRatingHandler(db *gorm.DB) *RatingHandler {
	return &RatingHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateRatingRequest struct {
	TargetType    string `json:"target_type" binding:"required"`
	TargetID      uint   `json:"target_id" binding:"required"`
	AppointmentID *uint  `json:"appointment_id"`

	OverallScore float64 `json:"overall_score" binding:"required"`

	CleanlinessScore     *float64 `json:"cleanliness_score"`
	ServiceQualityScore  *float64 `json:"service_quality_score"`
	ValueForMoneyScore   *float64 `json:"value_for_money_score"`
	ProfessionalismScore *float64 `json:"professionalism_score"`

	Comment string `json:"comment"`
}

func validTargetType(t string) bool {
	switch t {
	case models.RatingTargetSalon, models.RatingTargetService, models.RatingTargetStylist:
		return true
	}
	return false
}

func validScore(s float64) bool {
	return s >= 1 && s <= 5
}

// ======================================================
// CREATE (somente cliente)
// ======================================================

func (h *RatingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validTargetType(req.TargetType) {
		httperr.BadRequest(c, "invalid_target_type", "Tipo de alvo inválido.")
		return
	}

	if !validScore(req.OverallScore) {
		httperr.BadRequest(c, "invalid_score", "Nota deve ficar entre 1 e 5.")
		return
	}

	// avaliação vinculada a agendamento exige agendamento concluído do
	// próprio cliente
	if req.AppointmentID != nil {
		var ap models.Appointment
		if err := h.db.First(&ap, *req.AppointmentID).Error; err != nil {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if ap.ClientID != userID {
			httperr.Forbidden(c, "not_allowed", "Agendamento de outro cliente.")
			return
		}
		if ap.Status != string(schedule.StatusCompleted) {
			httperr.BadRequest(c, "appointment_not_completed",
				"Só é possível avaliar atendimentos concluídos.")
			return
		}
	}

	rating := models.Rating{
		UserID:               userID,
		TargetType:           req.TargetType,
		TargetID:             req.TargetID,
		AppointmentID:        req.AppointmentID,
		OverallScore:         req.OverallScore,
		CleanlinessScore:     req.CleanlinessScore,
		ServiceQualityScore:  req.ServiceQualityScore,
		ValueForMoneyScore:   req.ValueForMoneyScore,
		ProfessionalismScore: req.ProfessionalismScore,
		Comment:              req.Comment,
	}

	if err := h.db.Create(&rating).Error; err != nil {
		httperr.Internal(c, "failed_to_create_rating", "Erro ao registrar avaliação.")
		return
	}

	httpresp.Created(c, rating)
}

// ======================================================
// LISTAGEM POR ALVO
// ======================================================

func (h *RatingHandler) ListByTarget(c *gin.Context) {
	targetType := c.Param("targetType")
	if !validTargetType(targetType) {
		httperr.BadRequest(c, "invalid_target_type", "Tipo de alvo inválido.")
		return
	}

	targetID, ok := paramUint(c, "targetId")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ratings []models.Rating
	if err := h.db.
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_ratings", "Erro ao listar avaliações.")
		return
	}

	var average float64
	if len(ratings) > 0 {
		for _, r := range ratings {
			average += r.OverallScore
		}
		average /= float64(len(ratings))
	}

	c.JSON(200, gin.H{
		"data":    ratings,
		"total":   len(ratings),
		"average": average,
	})
}
