package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	ucSchedule "github.com/semprecheioapp/semprecheioapp-sub001/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

// WebhookHandler atende os callbacks externos: o bot de atendimento
// (cancelamento por telefone) e as notificações de cobrança do Asaas.
type WebhookHandler struct {
	db     *gorm.DB
	logger *zap.Logger

	cancelAppointment *ucSchedule.CancelAppointment
}

func NewWebhookHandler(
	db *gorm.DB,
	logger *zap.Logger,
	cancelAppointment *ucSchedule.CancelAppointment,
) *WebhookHandler {
	return &WebhookHandler{
		db:                db,
		logger:            logger,
		cancelAppointment: cancelAppointment,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// campos com os nomes que o bot envia, não renomear
type CancelWebhookRequest struct {
	SessionID     string `json:"sessionid" binding:"required"`
	AppointmentID string `json:"agendamento_id" binding:"required"`
}

type AsaasWebhookRequest struct {
	Event   string `json:"event"`
	Payment struct {
		Subscription string `json:"subscription"`
		DueDate      string `json:"dueDate"`
	} `json:"payment"`
	Subscription struct {
		ID string `json:"id"`
	} `json:"subscription"`
}

// ======================================================
// CANCELAMENTO VIA BOT
// ======================================================

func (h *WebhookHandler) CancelAppointment(c *gin.Context) {
	var req CancelWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_field", "Informe sessionid e agendamento_id.")
		return
	}

	err := h.cancelAppointment.Execute(c.Request.Context(), ucSchedule.CancelAppointmentInput{
		AppointmentID: req.AppointmentID,
		SessionPhone:  req.SessionID,
	})
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.BadRequest(c, be.Code, "Não foi possível cancelar.")
			return
		}
		httperr.Internal(c, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, gin.H{"cancelled": true})
}

// ======================================================
// ASAAS
// ======================================================

func (h *WebhookHandler) Asaas(c *gin.Context) {
	var req AsaasWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Payload inválido.")
		return
	}

	subID := req.Payment.Subscription
	if subID == "" {
		subID = req.Subscription.ID
	}
	if subID == "" {
		// eventos que não referenciam assinatura são confirmados e ignorados
		httpresp.OK(c, gin.H{"received": true})
		return
	}

	updates := map[string]any{}
	switch req.Event {
	case "PAYMENT_CONFIRMED", "PAYMENT_RECEIVED":
		updates["status"] = models.SubscriptionActive
		if req.Payment.DueDate != "" {
			updates["next_due_date"] = req.Payment.DueDate
		}
	case "PAYMENT_OVERDUE":
		updates["status"] = models.SubscriptionOverdue
	case "SUBSCRIPTION_DELETED", "SUBSCRIPTION_INACTIVATED":
		updates["status"] = models.SubscriptionCancelled
	default:
		h.logger.Info("evento asaas ignorado", zap.String("event", req.Event))
		httpresp.OK(c, gin.H{"received": true})
		return
	}

	res := h.db.Model(&models.Subscription{}).
		Where("asaas_subscription_id = ?", subID).
		Updates(updates)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_subscription", "Erro ao atualizar assinatura.")
		return
	}
	if res.RowsAffected == 0 {
		h.logger.Warn("webhook asaas para assinatura desconhecida",
			zap.String("subscription", subID),
			zap.String("event", req.Event),
		)
	}

	httpresp.OK(c, gin.H{"received": true})
}
