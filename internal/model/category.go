package model

import (
	"strings"

	"go-inventory-api/internal/apperr"
)

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "required")
	}
	return nil
}
