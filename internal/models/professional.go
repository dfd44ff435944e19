package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	SpecialtyID *string    `gorm:"type:uuid" json:"specialty_id"`
	Specialty   *Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"specialty,omitempty"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
