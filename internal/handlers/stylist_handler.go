package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/httpresp"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/models"
	"github.com/glowupapps/salon-scheduler/internal/storage"
)

type StylistHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewStylistHandler(db *gorm.DB, uploader *storage.Uploader) *StylistHandler {
	return &StylistHandler{db: db, uploader: uploader}
}

// ======================================================
// REQUESTS
// ======================================================

type StylistRequest struct {
	FullName          string   `json:"full_name" binding:"required"`
	Bio               string   `json:"bio"`
	YearsOfExperience int      `json:"years_of_experience"`
	Specialties       []string `json:"specialties"`
}

type StylistServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// ======================================================
// PÚBLICO
// ======================================================

func (h *StylistHandler) ListBySalon(c *gin.Context) {
	salonID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var stylists []models.Stylist
	if err := h.db.
		Preload("Services", "is_active = true").
		Where("salon_id = ? AND is_active = true", salonID).
		Order("id ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Erro ao listar estilistas.")
		return
	}

	httpresp.List(c, stylists)
}

// ======================================================
// DONO
// ======================================================

func (h *StylistHandler) Create(c *gin.Context) {
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

	var req StylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	stylist := models.Stylist{
		SalonID:           salon.ID,
		FullName:          req.FullName,
		Bio:               req.Bio,
		YearsOfExperience: req.YearsOfExperience,
		Specialties:       req.Specialties,
		IsActive:          true,
	}

	if err := h.db.Create(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_stylist", "Erro ao criar estilista.")
		return
	}

	httpresp.Created(c, stylist)
}

func (h *StylistHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	stylistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	stylist, salon, found := stylistWithSalon(h.db, stylistID)
	if !found {
		httperr.NotFound(c, "stylist_not_found", "Estilista não encontrado.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Você não administra este salão.")
		return
	}

	var req StylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	stylist.FullName = req.FullName
	stylist.Bio = req.Bio
	stylist.YearsOfExperience = req.YearsOfExperience
	stylist.Specialties = req.Specialties

	if err := h.db.Save(stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Erro ao atualizar estilista.")
		return
	}

	httpresp.OK(c, stylist)
}

// SetServices substitui o conjunto de serviços oferecidos.
func (h *StylistHandler) SetServices(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	stylistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	stylist, salon, found := stylistWithSalon(h.db, stylistID)
	if !found {
		httperr.NotFound(c, "stylist_not_found", "Estilista não encontrado.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Você não administra este salão.")
		return
	}

	var req StylistServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// só serviços ativos do mesmo salão
	var services []models.Service
	if err := h.db.
		Where("id IN ? AND salon_id = ? AND is_active = true", req.ServiceIDs, salon.ID).
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_load_services", "Erro ao carregar serviços.")
		return
	}

	if len(services) != len(req.ServiceIDs) {
		httperr.BadRequest(c, "invalid_service_ids", "Algum serviço não pertence a este salão.")
		return
	}

	if err := h.db.Model(stylist).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_set_services", "Erro ao vincular serviços.")
		return
	}

	httpresp.OK(c, gin.H{"stylist_id": stylist.ID, "service_ids": req.ServiceIDs})
}

// ======================================================
// EXPEDIENTE
// ======================================================

func (h *StylistHandler) GetWorkingHours(c *gin.Context) {
	stylistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var stylist models.Stylist
	if err := h.db.First(&stylist, stylistID).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Estilista não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"working_hours": stylist.WorkingHours})
}

// UpdateWorkingHours troca o expediente semanal inteiro. Blocos de um
// mesmo dia precisam ser disjuntos; a validação acontece na escrita
// para que a geração de slots possa confiar no dado.
func (h *StylistHandler) UpdateWorkingHours(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	stylistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	stylist, salon, found := stylistWithSalon(h.db, stylistID)
	if !found {
		httperr.NotFound(c, "stylist_not_found", "Estilista não encontrado.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Você não administra este salão.")
		return
	}

	var hours schedule.WeeklyHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := hours.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_working_hours", err.Error())
		return
	}

	stylist.WorkingHours = hours
	if err := h.db.Save(stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Erro ao atualizar expediente.")
		return
	}

	httpresp.OK(c, gin.H{"working_hours": stylist.WorkingHours})
}

// ======================================================
// PORTFÓLIO
// ======================================================

func (h *StylistHandler) UploadPortfolioImage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	stylistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	stylist, salon, found := stylistWithSalon(h.db, stylistID)
	if !found {
		httperr.NotFound(c, "stylist_not_found", "Estilista não encontrado.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Você não administra este salão.")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Envie o arquivo no campo 'image'.")
		return
	}
	defer file.Close()

	processed, err := storage.ProcessImage(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida (use JPEG ou PNG).")
		return
	}

	key := fmt.Sprintf("stylists/%d/portfolio-%s.webp", stylist.ID, uuid.NewString())
	url, err := h.uploader.Upload(c.Request.Context(), key, processed, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	stylist.PortfolioImages = append(stylist.PortfolioImages, url)
	if err := h.db.Save(stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Erro ao atualizar portfólio.")
		return
	}

	httpresp.OK(c, gin.H{"portfolio_images": stylist.PortfolioImages})
}
