package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

// MetricsHandler calcula as visões cross-tenant do operador da
// plataforma. Só é montado atrás de RequireRole(super_admin).
type MetricsHandler struct {
	db *gorm.DB
}

func NewMetricsHandler(db *gorm.DB) *MetricsHandler {
	return &MetricsHandler{db: db}
}

// ======================================================
// RESPONSES
// ======================================================

type TenantRevenueRow struct {
	ClientID     string  `json:"client_id"`
	ClientName   string  `json:"client_name"`
	Month        string  `json:"month"`
	Appointments int64   `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

// ======================================================
// REVENUE
// ======================================================

// Revenue soma o preço dos agendamentos concluídos por tenant e mês.
// O preço efetivo de cada agendamento é o custom_price da janela quando
// presente, senão o preço do serviço.
func (h *MetricsHandler) Revenue(c *gin.Context) {
	q := h.db.Table("appointments a").
		Select(`a.client_id,
			cl.name AS client_name,
			to_char(a.scheduled_at, 'YYYY-MM') AS month,
			COUNT(*) AS appointments,
			SUM(COALESCE(av.custom_price, s.price)) AS revenue`).
		Joins("JOIN clients cl ON cl.id = a.client_id").
		Joins("JOIN services s ON s.id = a.service_id").
		Joins("LEFT JOIN professional_availability av ON av.id = a.availability_id").
		Where("a.status = ?", "completed").
		Group("a.client_id, cl.name, to_char(a.scheduled_at, 'YYYY-MM')").
		Order("month DESC, revenue DESC")

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("a.client_id = ?", clientID)
	}
	if month := c.Query("month"); month != "" {
		q = q.Having("to_char(a.scheduled_at, 'YYYY-MM') = ?", month)
	}

	var rows []TenantRevenueRow
	if err := q.Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_compute_revenue", "Erro ao calcular faturamento.")
		return
	}

	httpresp.List(c, rows)
}
