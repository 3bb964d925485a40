package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
	"github.com/glowupapps/salon-scheduler/internal/timezone"
)

// --------------------------------------------------
// Datas no fuso do salão
// --------------------------------------------------

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
}

func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(),
	)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// --------------------------------------------------
// Propriedade (dono do salão)
// --------------------------------------------------

func salonOwnedBy(db *gorm.DB, salonID, userID uint) (*models.Salon, bool) {
	var salon models.Salon
	if err := db.Where("id = ? AND owner_id = ?", salonID, userID).First(&salon).Error; err != nil {
		return nil, false
	}
	return &salon, true
}

func stylistWithSalon(db *gorm.DB, stylistID uint) (*models.Stylist, *models.Salon, bool) {
	var stylist models.Stylist
	if err := db.First(&stylist, stylistID).Error; err != nil {
		return nil, nil, false
	}

	var salon models.Salon
	if err := db.First(&salon, stylist.SalonID).Error; err != nil {
		return nil, nil, false
	}

	return &stylist, &salon, true
}

// --------------------------------------------------
// Tradução de BusinessError para HTTP
// --------------------------------------------------

var businessMessages = map[string]string{
	"service_not_found":            "Serviço não encontrado ou inativo.",
	"stylist_not_found":            "Estilista não encontrado ou inativo.",
	"appointment_not_found":        "Agendamento não encontrado.",
	"stylist_service_mismatch":     "O estilista não oferece este serviço.",
	"invalid_appointment_type":     "Tipo de atendimento inválido.",
	"invalid_service_duration":     "Serviço com duração inválida.",
	"address_required":             "Endereço é obrigatório para atendimento a domicílio.",
	"stylist_day_off":              "O estilista não atende neste dia da semana.",
	"outside_working_hours":        "Horário fora do expediente do estilista.",
	"slot_conflict":                "Horário indisponível.",
	"invalid_status":               "Status inválido.",
	"invalid_transition":           "Transição de status não permitida.",
	"cancellation_reason_required": "Informe o motivo do cancelamento.",
}

// writeBusinessError mapeia códigos de negócio conhecidos para o
// status HTTP certo. Devolve false quando err não é BusinessError
// (o handler trata como erro interno).
func writeBusinessError(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	msg, known := businessMessages[code]
	if !known {
		msg = "Operação não permitida."
	}

	switch code {
	case "service_not_found", "stylist_not_found", "appointment_not_found":
		httperr.NotFound(c, code, msg)
	case "slot_conflict":
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}

	return true
}
