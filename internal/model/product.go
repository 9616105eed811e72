package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-inventory-api/internal/apperr"
)

type Product struct {
	BaseModel
	SKU           string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Description   string          `gorm:"type:text" json:"description"`
	ImageURL      string          `gorm:"type:text" json:"image_url"`

	// Relations
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Validate checks the field-level invariants that GORM tags cannot express.
// Stock quantity is owned by the ledger and is not settable to a negative
// value through any path.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "required")
	}
	if strings.TrimSpace(p.SKU) == "" {
		return apperr.Validation("sku", "required")
	}
	if p.Price.IsNegative() {
		return apperr.Validation("price", "non-negative")
	}
	if p.StockQuantity < 0 {
		return apperr.Validation("stock_quantity", "non-negative")
	}
	return nil
}

// CategoryName returns the preloaded category name, empty when uncategorized.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
