package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/httpresp"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/models"
	"github.com/glowupapps/salon-scheduler/internal/storage"
)

type SalonHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewSalonHandler(db *gorm.DB, uploader *storage.Uploader) *SalonHandler {
	return &SalonHandler{db: db, uploader: uploader}
}

// ======================================================
// REQUESTS
// ======================================================

type SalonRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	PostalCode  string `json:"postal_code"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
}

// ======================================================
// PÚBLICO
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	city := strings.TrimSpace(strings.ToLower(c.Query("city")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("is_active = true")

	if city != "" {
		q = q.Where("LOWER(city) = ?", city)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var salons []models.Salon
	if err := q.Order("id ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Erro ao listar salões.")
		return
	}

	httpresp.List(c, salons)
}

func (h *SalonHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("id = ? AND is_active = true", id).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	httpresp.OK(c, salon)
}

// ======================================================
// DONO
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	salon := models.Salon{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		IsActive:    true,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_create_salon", "Erro ao criar salão.")
		return
	}

	httpresp.Created(c, salon)
}

func (h *SalonHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var salons []models.Salon
	if err := h.db.Where("owner_id = ?", userID).Order("id ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Erro ao listar salões.")
		return
	}

	httpresp.List(c, salons)
}

func (h *SalonHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	salon, owned := salonOwnedBy(h.db, id, userID)
	if !owned {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req SalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	salon.Name = req.Name
	salon.Description = req.Description
	salon.Address = req.Address
	salon.City = req.City
	salon.PostalCode = req.PostalCode
	salon.Phone = req.Phone
	salon.Email = req.Email
	salon.Website = req.Website

	if err := h.db.Save(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao atualizar salão.")
		return
	}

	httpresp.OK(c, salon)
}

// UploadLogo recebe multipart, converte para WebP e publica no S3.
func (h *SalonHandler) UploadLogo(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	salon, owned := salonOwnedBy(h.db, id, userID)
	if !owned {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
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

	key := fmt.Sprintf("salons/%d/logo-%s.webp", salon.ID, uuid.NewString())
	url, err := h.uploader.Upload(c.Request.Context(), key, processed, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	salon.LogoURL = url
	if err := h.db.Save(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao atualizar salão.")
		return
	}

	httpresp.OK(c, gin.H{"logo_url": url})
}
