package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	clientID := tenantID(c)

	q := h.db.Where("client_id = ?", clientID)

	if search := strings.TrimSpace(c.Query("query")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, customers)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	clientID := tenantID(c)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	customer := models.Customer{
		ClientID: clientID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Erro ao criar cliente.")
		return
	}

	httpresp.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	var req UpdateCustomerRequest
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
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := h.db.Model(&customer).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_customer", "Erro ao atualizar cliente.")
			return
		}
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		Delete(&models.Customer{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_customer", "Erro ao remover cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
