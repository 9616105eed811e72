package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs bound from HTTP bodies. Totals are intentionally absent from
// CreateTransactionRequest: the engine recomputes them from the lines.

type TransactionLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateTransactionRequest struct {
	Type        TransactionType          `json:"transaction_type" validate:"required,oneof=SALE PURCHASE RETURN_TO_SUPPLIER"`
	SupplierID  *uuid.UUID               `json:"supplier_id"`
	Lines       []TransactionLineRequest `json:"lines" validate:"required,min=1,dive"`
	Description string                   `json:"description"`
	Note        string                   `json:"note"`
}

type UpdateStatusRequest struct {
	Status TransactionStatus `json:"status" validate:"required,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
}

type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock_quantity"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest covers the non-quantity fields. Stock is only mutated
// through the ledger.
type UpdateProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
