package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`

	ProfessionalID string       `gorm:"type:uuid;index;not null" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ServiceID string  `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	AvailabilityID string       `gorm:"type:uuid;not null" json:"availability_id"`
	Availability   Availability `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// nulo para reservas feitas por telefone/WhatsApp sem cadastro
	CustomerID *string   `gorm:"type:uuid" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;index" json:"customer_phone"`

	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
