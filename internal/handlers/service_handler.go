package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/httpresp"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`

	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price" binding:"required"`

	AvailableAtHome bool     `json:"available_at_home"`
	HomeServiceFee  *float64 `json:"home_service_fee"`

	AllowsOnlineBooking *bool `json:"allows_online_booking"`
}

// ======================================================
// PÚBLICO
// ======================================================

func (h *ServiceHandler) ListBySalon(c *gin.Context) {
	salonID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("salon_id = ? AND is_active = true", salonID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// DONO
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	salonID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	salon, owned := salonOwnedBy(h.db, salonID, userID)
	if !owned {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração deve ser maior que zero.")
		return
	}

	service := models.Service{
		SalonID:         salon.ID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		DurationMin:     req.DurationMin,
		Price:           req.Price,
		AvailableAtHome: req.AvailableAtHome,
		HomeServiceFee:  req.HomeServiceFee,
		IsActive:        true,
	}

	if req.AllowsOnlineBooking != nil {
		service.AllowsOnlineBooking = *req.AllowsOnlineBooking
	} else {
		service.AllowsOnlineBooking = true
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	if _, owned := salonOwnedBy(h.db, service.SalonID, userID); !owned {
		httperr.Forbidden(c, "not_salon_owner", "Você não administra este salão.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração deve ser maior que zero.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Category = req.Category
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	service.AvailableAtHome = req.AvailableAtHome
	service.HomeServiceFee = req.HomeServiceFee

	if req.AllowsOnlineBooking != nil {
		service.AllowsOnlineBooking = *req.AllowsOnlineBooking
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Deactivate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	if _, owned := salonOwnedBy(h.db, service.SalonID, userID); !owned {
		httperr.Forbidden(c, "not_salon_owner", "Você não administra este salão.")
		return
	}

	service.IsActive = false
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, service)
}
