package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/media"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

type ProfessionalHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewProfessionalHandler(db *gorm.DB, uploader *media.Uploader) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	SpecialtyID *string `json:"specialty_id"`
}

type UpdateProfessionalRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	SpecialtyID *string `json:"specialty_id,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	clientID := tenantID(c)

	q := h.db.Preload("Specialty").Where("client_id = ?", clientID)
	if active := c.Query("active"); active == "true" {
		q = q.Where("active = true")
	}

	var pros []models.Professional
	if err := q.Order("name ASC").Find(&pros).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	clientID := tenantID(c)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pro := models.Professional{
		ClientID:    clientID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		SpecialtyID: req.SpecialtyID,
		Active:      true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.SpecialtyID != nil {
		updates["specialty_id"] = *req.SpecialtyID
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := h.db.Model(&pro).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
			return
		}
	}

	httpresp.OK(c, pro)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		Delete(&models.Professional{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Foto ---------

func (h *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo de foto obrigatório.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadProfessionalPhoto(c.Request.Context(), pro.ID, file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao enviar foto.")
		return
	}

	if err := h.db.Model(&pro).Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "Erro ao salvar foto.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
