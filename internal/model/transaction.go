package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-inventory-api/internal/apperr"
)

type TransactionType string

const (
	TypeSale             TransactionType = "SALE"
	TypePurchase         TransactionType = "PURCHASE"
	TypeReturnToSupplier TransactionType = "RETURN_TO_SUPPLIER"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeSale, TypePurchase, TypeReturnToSupplier:
		return true
	}
	return false
}

// NeedsSupplier reports whether the type must reference a supplier.
func (t TransactionType) NeedsSupplier() bool {
	return t == TypePurchase || t == TypeReturnToSupplier
}

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusProcessing TransactionStatus = "PROCESSING"
	StatusCompleted  TransactionStatus = "COMPLETED"
	StatusCancelled  TransactionStatus = "CANCELLED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Transaction struct {
	BaseModel
	Type        TransactionType   `gorm:"type:varchar(20);not null;index" json:"transaction_type" validate:"required,oneof=SALE PURCHASE RETURN_TO_SUPPLIER"`
	Status      TransactionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Description string            `gorm:"type:text" json:"description"`
	Note        string            `gorm:"type:text" json:"note"`

	// Computed from lines on every mutation, never trusted from the caller.
	TotalProducts int             `gorm:"not null" json:"total_products"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_price"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Owned lines, deleted with the transaction.
	Lines []TransactionLine `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"lines"`
}

// TransactionLine is one product entry of a transaction. UnitPrice and the
// name/SKU fields are snapshots taken at creation time so history survives
// later product edits or deletion.
type TransactionLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductSKU    string          `gorm:"type:varchar(50);not null" json:"product_sku"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
}

func (l *TransactionLine) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// Subtotal is quantity times the snapshot unit price.
func (l *TransactionLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l *TransactionLine) Validate() error {
	if l.ProductID == uuid.Nil {
		return apperr.Validation("product_id", "required")
	}
	if l.Quantity <= 0 {
		return apperr.Validation("quantity", "positive")
	}
	return nil
}

// RecomputeTotals derives TotalProducts and TotalPrice from the lines,
// discarding whatever values were set before.
func (t *Transaction) RecomputeTotals() {
	total := 0
	price := decimal.Zero
	for i := range t.Lines {
		total += t.Lines[i].Quantity
		price = price.Add(t.Lines[i].Subtotal())
	}
	t.TotalProducts = total
	t.TotalPrice = price
}

// StockDeltas returns the per-product stock change a completion applies.
// Purchases add stock; sales and returns to supplier remove it. Quantities
// for the same product across lines are combined.
func (t *Transaction) StockDeltas() map[uuid.UUID]int {
	deltas := make(map[uuid.UUID]int, len(t.Lines))
	for i := range t.Lines {
		qty := t.Lines[i].Quantity
		if t.Type != TypePurchase {
			qty = -qty
		}
		deltas[t.Lines[i].ProductID] += qty
	}
	return deltas
}

// ReverseStockDeltas returns the compensating deltas used when a COMPLETED
// transaction is cancelled.
func (t *Transaction) ReverseStockDeltas() map[uuid.UUID]int {
	deltas := t.StockDeltas()
	for id, d := range deltas {
		deltas[id] = -d
	}
	return deltas
}
