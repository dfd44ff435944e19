package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/timezone"
)

// ClientHandler é a administração de tenants, restrita ao operador.
type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Plan     string `json:"plan"`
	Timezone string `json:"timezone"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Plan     *string `json:"plan,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	var clients []models.Client
	if err := h.db.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar empresas.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	client := models.Client{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		Plan:     req.Plan,
		Timezone: req.Timezone,
	}

	if err := h.db.Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "company_already_exists", "Empresa já cadastrada.")
			return
		}
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar empresa.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.Where("id = ?", id).First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Empresa não encontrada.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Plan != nil {
		updates["plan"] = *req.Plan
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		updates["timezone"] = *req.Timezone
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := h.db.Model(&client).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar empresa.")
			return
		}
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Where("id = ?", id).Delete(&models.Client{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover empresa.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Empresa não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}
