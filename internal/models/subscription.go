package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionActive    = "active"
	SubscriptionOverdue   = "overdue"
	SubscriptionCancelled = "cancelled"
)

// Subscription vincula um tenant a uma assinatura recorrente no Asaas.
type Subscription struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Plan  string  `gorm:"size:30;not null" json:"plan"`
	Value float64 `json:"value"`

	AsaasSubscriptionID string `gorm:"size:50;index" json:"asaas_subscription_id"`

	Status      string  `gorm:"size:20;default:'active'" json:"status"`
	NextDueDate *string `gorm:"type:date" json:"next_due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
