package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/dto"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	ucSchedule "github.com/semprecheioapp/semprecheioapp-sub001/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	createAppointment *ucSchedule.CreateAppointment
	cancelAppointment *ucSchedule.CancelAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	createAppointment *ucSchedule.CreateAppointment,
	cancelAppointment *ucSchedule.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:                db,
		audit:             auditDispatcher,
		createAppointment: createAppointment,
		cancelAppointment: cancelAppointment,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID string  `json:"professional_id" binding:"required"`
	ServiceID      string  `json:"service_id" binding:"required"`
	AvailabilityID string  `json:"availability_id" binding:"required"`
	CustomerID     *string `json:"customer_id"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
}

type CancelAppointmentRequest struct {
	AppointmentID  string `json:"appointment_id" binding:"required"`
	AvailabilityID string `json:"availability_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID := tenantID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_field", "Dados obrigatórios ausentes.")
		return
	}

	ap, err := h.createAppointment.Execute(c.Request.Context(), ucSchedule.CreateAppointmentInput{
		ClientID:       clientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		AvailabilityID: req.AvailabilityID,
		CustomerID:     req.CustomerID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Status:         req.Status,
		Notes:          req.Notes,
	})
	if err != nil {
		h.writeAppointmentError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) writeAppointmentError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	switch be.Code {
	case "slot_already_booked":
		httperr.Conflict(c, be.Code, "Horário já reservado.")
	case "client_not_found", "service_not_found", "availability_not_found":
		httperr.NotFound(c, be.Code, "Registro não encontrado.")
	default:
		httperr.BadRequest(c, be.Code, "Dados inválidos.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	clientID := tenantID(c)

	q := h.db.Table("appointments a").
		Select(`a.id, a.scheduled_at, a.status, a.customer_name, a.customer_phone,
			p.name AS professional_name, s.name AS service_name`).
		Joins("JOIN professionals p ON p.id = a.professional_id").
		Joins("JOIN services s ON s.id = a.service_id").
		Where("a.client_id = ?", clientID)

	if pid := c.Query("professional_id"); pid != "" {
		q = q.Where("a.professional_id = ?", pid)
	}
	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("DATE(a.scheduled_at) = ?", date)
	}
	if from := c.Query("date_from"); from != "" {
		if !validDate(from) {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("DATE(a.scheduled_at) >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		if !validDate(to) {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("DATE(a.scheduled_at) <= ?", to)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("a.status = ?", string(domain.NormalizeStatus(status)))
	}

	var rows []dto.AppointmentListDTO
	if err := q.Order("a.scheduled_at ASC").Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// CANCEL / confirmação de status
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_field", "Informe o agendamento.")
		return
	}

	err := h.cancelAppointment.Execute(c.Request.Context(), ucSchedule.CancelAppointmentInput{
		AppointmentID:  req.AppointmentID,
		ClientID:       tenantID(c),
		AvailabilityID: req.AvailabilityID,
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

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, domain.StatusConfirmed, domain.CanConfirm)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, domain.StatusCompleted, domain.CanComplete)
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	target domain.Status,
	allowed func(domain.Status) error,
) {
	clientID := tenantID(c)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if err := allowed(domain.NormalizeStatus(ap.Status)); err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.BadRequest(c, be.Code, "Transição de status inválida.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	if err := h.db.Model(&ap).Update("status", string(target)).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClientID: clientID,
		UserID:   currentUserID(c),
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	ap.Status = string(target)
	httpresp.OK(c, ap)
}
