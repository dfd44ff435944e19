package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability é uma janela agendável de um profissional.
//
// Duas formas convivem na mesma tabela:
//   - linha concreta: Date preenchido, DayOfWeek nulo — é o que o cliente reserva;
//   - template semanal: Date nulo, DayOfWeek preenchido — consumido apenas pela
//     materialização mensal, nunca reservado diretamente.
//
// Datas são calendário puro ("2006-01-02") e horários são relógio de parede
// ("15:04"), sem fuso; o fuso do tenant só entra ao derivar ScheduledAt.
type Availability struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`

	ProfessionalID string       `gorm:"type:uuid;index;not null" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      *string `gorm:"type:date" json:"date"`
	DayOfWeek *int    `json:"day_of_week"` // 0=domingo .. 6=sábado

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	// true = livre/reservável; false = ocupada ou desativada manualmente
	IsActive bool `gorm:"default:true" json:"is_active"`

	// override opcional por serviço
	ServiceID         *string  `gorm:"type:uuid" json:"service_id"`
	CustomPrice       *float64 `json:"custom_price"`
	CustomDurationMin *int     `json:"custom_duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Availability) TableName() string {
	return "professional_availability"
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsTemplate indica se a linha é um template semanal (nunca reservável).
func (a *Availability) IsTemplate() bool {
	return a.Date == nil && a.DayOfWeek != nil
}
