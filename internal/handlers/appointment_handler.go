package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/httpresp"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/models"
	ucAppointment "github.com/glowupapps/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC        *ucAppointment.CreateAppointment
	availabilityUC  *ucAppointment.GetAvailability
	updateStatusUC  *ucAppointment.UpdateStatus
	updatePaymentUC *ucAppointment.UpdatePayment
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	updateStatusUC *ucAppointment.UpdateStatus,
	updatePaymentUC *ucAppointment.UpdatePayment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:              db,
		createUC:        createUC,
		availabilityUC:  availabilityUC,
		updateStatusUC:  updateStatusUC,
		updatePaymentUC: updatePaymentUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	StylistID uint `json:"stylist_id" binding:"required"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	AppointmentType string `json:"appointment_type"`
	Address         string `json:"address"`
	Notes           string `json:"notes"`
}

type StatusUpdateRequest struct {
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
}

type PaymentUpdateRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required"`
}

// ======================================================
// CREATE (somente cliente)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	apType := schedule.AppointmentType(req.AppointmentType)
	if req.AppointmentType == "" {
		apType = schedule.TypeInSalon
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:        clientID,
		ServiceID:       req.ServiceID,
		StylistID:       req.StylistID,
		StartTime:       start,
		AppointmentType: apType,
		Address:         req.Address,
		Notes:           req.Notes,
	})
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		}
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// AVAILABILITY (público)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID, ok := queryUint(c, "service_id")
	if !ok || serviceID == 0 {
		httperr.BadRequest(c, "missing_service_id", "Informe o serviço.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	stylistID, _ := queryUint(c, "stylist_id")

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		ServiceID: serviceID,
		Date:      date,
		StylistID: stylistID,
	})
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_check_availability", "Erro ao consultar disponibilidade.")
		}
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	q := h.db.
		Preload("Service").
		Preload("Stylist").
		Order("start_time DESC")

	switch role {
	case models.RoleClient:
		q = q.Where("client_id = ?", userID)
	case models.RoleStylist:
		q = q.Where("stylist_id IN (?)",
			h.db.Model(&models.Stylist{}).Select("id").Where("user_id = ?", userID))
	case models.RoleSalonOwner:
		q = q.Where("stylist_id IN (?)",
			h.db.Model(&models.Stylist{}).Select("stylists.id").
				Joins("JOIN salons ON salons.id = stylists.salon_id").
				Where("salons.owner_id = ?", userID))
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDate(fromStr); err == nil {
			q = q.Where("start_time >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDate(toStr); err == nil {
			q = q.Where("start_time < ?", to.AddDate(0, 0, 1))
		}
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Stylist").
		First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if !h.canActOn(c, &ap) {
		httperr.Forbidden(c, "not_allowed", "Sem permissão para este agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

// UpdateStatus aplica as regras de papel (quem pode pedir o quê) e
// delega a legalidade da transição ao caso de uso.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	newStatus := schedule.Status(req.Status)

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if !h.canActOn(c, &ap) {
		httperr.Forbidden(c, "not_allowed", "Sem permissão para este agendamento.")
		return
	}

	// capacidade por papel, antes da máquina de estados
	switch role {
	case models.RoleClient:
		if newStatus != schedule.StatusCancelled {
			httperr.Forbidden(c, "clients_can_only_cancel", "Clientes só podem cancelar.")
			return
		}
	case models.RoleStylist:
		switch newStatus {
		case schedule.StatusConfirmed, schedule.StatusCompleted, schedule.StatusNoShow:
		default:
			httperr.Forbidden(c, "status_not_allowed_for_stylist",
				"Estilistas podem confirmar, concluir ou marcar falta.")
			return
		}
	}

	updated, err := h.updateStatusUC.Execute(
		c.Request.Context(), userID, id, newStatus, req.CancellationReason,
	)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar status.")
		}
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// PAGAMENTO
// ======================================================

func (h *AppointmentHandler) UpdatePayment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req PaymentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPaid == nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if !h.canActOn(c, &ap) {
		httperr.Forbidden(c, "not_allowed", "Sem permissão para este agendamento.")
		return
	}

	updated, err := h.updatePaymentUC.Execute(c.Request.Context(), userID, id, *req.IsPaid)
	if err != nil {
		if !writeBusinessError(c, err) {
			httperr.Internal(c, "failed_to_update_payment", "Erro ao atualizar pagamento.")
		}
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// AUTORIZAÇÃO POR PAPEL
// ======================================================

// canActOn decide se o usuário autenticado tem vínculo com o
// agendamento: cliente dono, estilista designado ou dono do salão.
func (h *AppointmentHandler) canActOn(c *gin.Context, ap *models.Appointment) bool {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	switch role {
	case models.RoleAdmin:
		return true

	case models.RoleClient:
		return ap.ClientID == userID

	case models.RoleStylist:
		var count int64
		h.db.Model(&models.Stylist{}).
			Where("id = ? AND user_id = ?", ap.StylistID, userID).
			Count(&count)
		return count > 0

	case models.RoleSalonOwner:
		var count int64
		h.db.Model(&models.Stylist{}).
			Joins("JOIN salons ON salons.id = stylists.salon_id").
			Where("stylists.id = ? AND salons.owner_id = ?", ap.StylistID, userID).
			Count(&count)
		return count > 0
	}

	return false
}
