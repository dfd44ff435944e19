package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/payments/asaas"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/timezone"
)

// ======================================================
// PLANOS
// ======================================================

// valores mensais por plano; a chave é o que fica gravado em clients.plan
var planPrices = map[string]float64{
	"basico":       49.90,
	"profissional": 99.90,
	"premium":      199.90,
}

// ======================================================
// HANDLER
// ======================================================

type SubscriptionHandler struct {
	db     *gorm.DB
	asaas  *asaas.Client
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewSubscriptionHandler(
	db *gorm.DB,
	asaasClient *asaas.Client,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		db:     db,
		asaas:  asaasClient,
		audit:  auditDispatcher,
		logger: logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SubscriptionHandler) Create(c *gin.Context) {
	clientID := tenantID(c)

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_field", "Informe o plano.")
		return
	}

	value, ok := planPrices[req.Plan]
	if !ok {
		httperr.BadRequest(c, "invalid_plan", "Plano desconhecido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", clientID).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Empresa não encontrada.")
		return
	}

	var existing models.Subscription
	err := h.db.
		Where("client_id = ? AND status <> ?", clientID, models.SubscriptionCancelled).
		First(&existing).Error
	if err == nil {
		httperr.Conflict(c, "subscription_already_active", "Já existe assinatura ativa.")
		return
	}

	ctx := c.Request.Context()

	// o cadastro no gateway é feito sob demanda na primeira assinatura
	if client.AsaasCustomerID == "" {
		customer, err := h.asaas.CreateCustomer(ctx, client.Name, client.Email, client.Phone)
		if err != nil {
			h.logger.Error("falha ao criar cliente no asaas", zap.Error(err))
			httperr.Internal(c, "payment_gateway_error", "Erro no gateway de pagamento.")
			return
		}
		client.AsaasCustomerID = customer.ID
		if err := h.db.Model(&client).
			Update("asaas_customer_id", customer.ID).Error; err != nil {
			httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar empresa.")
			return
		}
	}

	nextDue := timezone.Now().AddDate(0, 0, 7).Format("2006-01-02")

	sub, err := h.asaas.CreateSubscription(ctx, client.AsaasCustomerID, value, nextDue,
		"Assinatura "+req.Plan)
	if err != nil {
		h.logger.Error("falha ao criar assinatura no asaas", zap.Error(err))
		httperr.Internal(c, "payment_gateway_error", "Erro no gateway de pagamento.")
		return
	}

	record := models.Subscription{
		ClientID:            clientID,
		Plan:                req.Plan,
		Value:               value,
		AsaasSubscriptionID: sub.ID,
		Status:              models.SubscriptionActive,
		NextDueDate:         &nextDue,
	}
	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_subscription", "Erro ao gravar assinatura.")
		return
	}

	if err := h.db.Model(&client).Update("plan", req.Plan).Error; err != nil {
		h.logger.Warn("assinatura criada mas plano não atualizado",
			zap.String("client_id", clientID), zap.Error(err))
	}

	h.audit.Dispatch(audit.Event{
		ClientID: clientID,
		UserID:   currentUserID(c),
		Action:   "subscription_created",
		Entity:   "subscription",
		EntityID: &record.ID,
	})

	httpresp.Created(c, record)
}

// ======================================================
// GET / CANCEL
// ======================================================

func (h *SubscriptionHandler) Get(c *gin.Context) {
	clientID := tenantID(c)

	var sub models.Subscription
	err := h.db.
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		httperr.NotFound(c, "subscription_not_found", "Assinatura não encontrada.")
		return
	}

	httpresp.OK(c, sub)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	clientID := tenantID(c)

	var sub models.Subscription
	err := h.db.
		Where("client_id = ? AND status <> ?", clientID, models.SubscriptionCancelled).
		First(&sub).Error
	if err != nil {
		httperr.NotFound(c, "subscription_not_found", "Assinatura não encontrada.")
		return
	}

	if sub.AsaasSubscriptionID != "" {
		if err := h.asaas.CancelSubscription(c.Request.Context(), sub.AsaasSubscriptionID); err != nil {
			h.logger.Error("falha ao cancelar assinatura no asaas", zap.Error(err))
			httperr.Internal(c, "payment_gateway_error", "Erro no gateway de pagamento.")
			return
		}
	}

	if err := h.db.Model(&sub).
		Update("status", models.SubscriptionCancelled).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel_subscription", "Erro ao cancelar assinatura.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClientID: clientID,
		UserID:   currentUserID(c),
		Action:   "subscription_cancelled",
		Entity:   "subscription",
		EntityID: &sub.ID,
	})

	sub.Status = models.SubscriptionCancelled
	httpresp.OK(c, sub)
}
