package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer é o cliente final do tenant, sem login próprio.
type Customer struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
