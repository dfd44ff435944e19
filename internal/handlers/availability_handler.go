package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	ucSchedule "github.com/semprecheioapp/semprecheioapp-sub001/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	generateSlots     *ucSchedule.GenerateSlots
	materializeMonth  *ucSchedule.MaterializeMonth
	generateNextMonth *ucSchedule.GenerateNextMonth
}

func NewAvailabilityHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	generateSlots *ucSchedule.GenerateSlots,
	materializeMonth *ucSchedule.MaterializeMonth,
	generateNextMonth *ucSchedule.GenerateNextMonth,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:                db,
		audit:             auditDispatcher,
		generateSlots:     generateSlots,
		materializeMonth:  materializeMonth,
		generateNextMonth: generateNextMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAvailabilityRequest struct {
	ProfessionalID string  `json:"professional_id" binding:"required"`
	Date           *string `json:"date"`
	DayOfWeek      *int    `json:"day_of_week"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	IsActive       *bool   `json:"is_active"`

	ServiceID         *string  `json:"service_id"`
	CustomPrice       *float64 `json:"custom_price"`
	CustomDurationMin *int     `json:"custom_duration_min"`
}

type UpdateAvailabilityRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type GenerateSlotsRequest struct {
	ProfessionalID string  `json:"professional_id" binding:"required"`
	Date           *string `json:"date"`
	DayOfWeek      *int    `json:"day_of_week"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	SlotDuration   int     `json:"slot_duration" binding:"required"`

	ServiceID         *string  `json:"service_id"`
	CustomPrice       *float64 `json:"custom_price"`
	CustomDurationMin *int     `json:"custom_duration_min"`
}

type MaterializeMonthRequest struct {
	ProfessionalID string `json:"professional_id"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
}

type GenerateNextMonthRequest struct {
	ProfessionalID string `json:"professional_id"`
}

// ======================================================
// HELPERS
// ======================================================

func validClock(hm string) bool {
	_, err := time.Parse(domain.TimeLayout, hm)
	return err == nil
}

func validDate(date string) bool {
	_, err := time.Parse(domain.DateLayout, date)
	return err == nil
}

// ======================================================
// CREATE (linha única: concreta ou template)
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	clientID := tenantID(c)

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Horário inválido.")
		return
	}
	if req.StartTime >= req.EndTime {
		httperr.BadRequest(c, "invalid_range", "Intervalo inválido.")
		return
	}
	// exatamente uma das formas: linha concreta ou template semanal
	if (req.Date == nil) == (req.DayOfWeek == nil) {
		httperr.BadRequest(c, "date_or_day_of_week_required", "Informe data ou dia da semana, nunca ambos.")
		return
	}
	if req.Date != nil && !validDate(*req.Date) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		httperr.BadRequest(c, "invalid_day_of_week", "Dia da semana inválido.")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	av := models.Availability{
		ClientID:          clientID,
		ProfessionalID:    req.ProfessionalID,
		Date:              req.Date,
		DayOfWeek:         req.DayOfWeek,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		IsActive:          isActive,
		ServiceID:         req.ServiceID,
		CustomPrice:       req.CustomPrice,
		CustomDurationMin: req.CustomDurationMin,
	}

	if err := h.db.Create(&av).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "availability_already_exists", "Janela já cadastrada.")
			return
		}
		httperr.Internal(c, "failed_to_create_availability", "Erro ao criar disponibilidade.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClientID: clientID,
		UserID:   currentUserID(c),
		Action:   "availability_created",
		Entity:   "availability",
		EntityID: &av.ID,
	})

	httpresp.Created(c, av)
}

// ======================================================
// LIST
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	clientID := tenantID(c)

	q := h.db.Where("client_id = ?", clientID)

	if pid := c.Query("professional_id"); pid != "" {
		q = q.Where("professional_id = ?", pid)
	}
	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("date = ?", date)
	}
	if c.Query("templates") == "true" {
		q = q.Where("date IS NULL AND day_of_week IS NOT NULL")
	}
	if c.Query("active") == "true" {
		q = q.Where("is_active = true")
	}

	var rows []models.Availability
	if err := q.Order("date ASC, start_time ASC").Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", "Erro ao listar disponibilidade.")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// GENERATE SLOTS (expediente → janelas fixas)
// ======================================================

func (h *AvailabilityHandler) GenerateSlots(c *gin.Context) {
	clientID := tenantID(c)

	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.generateSlots.Execute(c.Request.Context(), ucSchedule.GenerateSlotsInput{
		ClientID:          clientID,
		ProfessionalID:    req.ProfessionalID,
		Date:              req.Date,
		DayOfWeek:         req.DayOfWeek,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DurationMin:       req.SlotDuration,
		ServiceID:         req.ServiceID,
		CustomPrice:       req.CustomPrice,
		CustomDurationMin: req.CustomDurationMin,
	})
	if err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.BadRequest(c, be.Code, "Parâmetros inválidos.")
			return
		}
		httperr.Internal(c, "failed_to_generate_slots", "Erro ao gerar janelas.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": len(created),
		"slots":   created,
	})
}

// ======================================================
// MATERIALIZAÇÃO MENSAL
// ======================================================

func (h *AvailabilityHandler) UpdateMonthly(c *gin.Context) {
	var req MaterializeMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.materializeMonth.Execute(c.Request.Context(), ucSchedule.MaterializeMonthInput{
		ProfessionalID: req.ProfessionalID,
		Month:          req.Month,
		Year:           req.Year,
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_month") {
			httperr.BadRequest(c, "invalid_month", "Mês inválido.")
			return
		}
		httperr.Internal(c, "failed_to_materialize", "Erro ao gerar agenda do mês.")
		return
	}

	httpresp.OK(c, res)
}

func (h *AvailabilityHandler) GenerateNextMonth(c *gin.Context) {
	var req GenerateNextMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.generateNextMonth.Execute(c.Request.Context(), req.ProfessionalID)
	if err != nil {
		httperr.Internal(c, "failed_to_materialize", "Erro ao gerar agenda do próximo mês.")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// PATCH / DELETE
// ======================================================

func (h *AvailabilityHandler) Update(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	var av models.Availability
	if err := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		First(&av).Error; err != nil {
		httperr.NotFound(c, "availability_not_found", "Disponibilidade não encontrada.")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updates := map[string]any{}
	if req.Date != nil {
		if !validDate(*req.Date) {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		updates["date"] = *req.Date
	}
	if req.StartTime != nil {
		if !validClock(*req.StartTime) {
			httperr.BadRequest(c, "invalid_time", "Horário inválido.")
			return
		}
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		if !validClock(*req.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Horário inválido.")
			return
		}
		updates["end_time"] = *req.EndTime
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.db.Model(&av).Updates(updates).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				httperr.Conflict(c, "availability_already_exists", "Janela já cadastrada.")
				return
			}
			httperr.Internal(c, "failed_to_update_availability", "Erro ao atualizar disponibilidade.")
			return
		}
	}

	httpresp.OK(c, av)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	clientID := tenantID(c)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND client_id = ?", id, clientID).
		Delete(&models.Availability{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_availability", "Erro ao remover disponibilidade.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "availability_not_found", "Disponibilidade não encontrada.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClientID: clientID,
		UserID:   currentUserID(c),
		Action:   "availability_deleted",
		Entity:   "availability",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
