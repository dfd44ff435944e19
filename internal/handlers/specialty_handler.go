package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

type SpecialtyHandler struct {
	db *gorm.DB
}

func NewSpecialtyHandler(db *gorm.DB) *SpecialtyHandler {
	return &SpecialtyHandler{db: db}
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	clientID := tenantID(c)

	var specialties []models.Specialty
	if err := h.db.
		Where("client_id = ?", clientID).
		Order("name ASC").
		Find(&specialties).Error; err != nil {
		httperr.Internal(c, "failed_to_list_specialties", "Erro ao listar especialidades.")
		return
	}

	httpresp.List(c, specialties)
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	clientID := tenantID(c)

	var req CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sp := models.Specialty{
		ClientID:    clientID,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}

	if err := h.db.Create(&sp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_specialty", "Erro ao criar especialidade.")
		return
	}

	httpresp.Created(c, sp)
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		Delete(&models.Specialty{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_specialty", "Erro ao remover especialidade.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "specialty_not_found", "Especialidade não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}
