package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client é o tenant da plataforma: a empresa que possui
// profissionais, serviços, clientes finais e agendamentos.
type Client struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	Plan            string `gorm:"size:30;default:'basico'" json:"plan"`
	AsaasCustomerID string `gorm:"size:50" json:"asaas_customer_id"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
