package model

import (
	"strings"

	"go-inventory-api/internal/apperr"
)

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactInfo string `gorm:"type:varchar(255)" json:"contact_info"`
	Address     string `gorm:"type:text" json:"address"`
}

func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return apperr.Validation("name", "required")
	}
	return nil
}
