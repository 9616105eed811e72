package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
)

func line(productID uuid.UUID, qty int, unitPrice string) model.TransactionLine {
	return model.TransactionLine{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
}

func TestRecomputeTotals(t *testing.T) {
	tx := model.Transaction{
		Type: model.TypeSale,
		Lines: []model.TransactionLine{
			line(uuid.New(), 2, "10.50"),
			line(uuid.New(), 3, "0.99"),
		},
		// Caller-supplied totals are garbage on purpose.
		TotalProducts: 999,
		TotalPrice:    decimal.RequireFromString("123456"),
	}

	tx.RecomputeTotals()
	assert.Equal(t, 5, tx.TotalProducts)
	assert.True(t, tx.TotalPrice.Equal(decimal.RequireFromString("23.97")), "got %s", tx.TotalPrice)
}

func TestRecomputeTotals_Empty(t *testing.T) {
	tx := model.Transaction{TotalProducts: 3}
	tx.RecomputeTotals()
	assert.Equal(t, 0, tx.TotalProducts)
	assert.True(t, tx.TotalPrice.IsZero())
}

func TestStockDeltas(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	lines := []model.TransactionLine{
		line(a, 2, "1"),
		line(b, 3, "1"),
		line(a, 1, "1"), // same product split over two lines
	}

	sale := model.Transaction{Type: model.TypeSale, Lines: lines}
	assert.Equal(t, map[uuid.UUID]int{a: -3, b: -3}, sale.StockDeltas())

	purchase := model.Transaction{Type: model.TypePurchase, Lines: lines}
	assert.Equal(t, map[uuid.UUID]int{a: 3, b: 3}, purchase.StockDeltas())

	ret := model.Transaction{Type: model.TypeReturnToSupplier, Lines: lines}
	assert.Equal(t, map[uuid.UUID]int{a: -3, b: -3}, ret.StockDeltas())
}

func TestReverseStockDeltas(t *testing.T) {
	a := uuid.New()
	sale := model.Transaction{Type: model.TypeSale, Lines: []model.TransactionLine{line(a, 4, "1")}}

	assert.Equal(t, map[uuid.UUID]int{a: 4}, sale.ReverseStockDeltas())
}

func TestLineSubtotal(t *testing.T) {
	l := line(uuid.New(), 3, "19.99")
	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product model.Product
		field   string
	}{
		{"empty name", model.Product{SKU: "S-1", Price: decimal.Zero}, "name"},
		{"empty sku", model.Product{Name: "Thing", Price: decimal.Zero}, "sku"},
		{"negative price", model.Product{Name: "Thing", SKU: "S-1", Price: decimal.RequireFromString("-1")}, "price"},
		{"negative stock", model.Product{Name: "Thing", SKU: "S-1", StockQuantity: -1}, "stock_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			var verr *apperr.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	ok := model.Product{Name: "Thing", SKU: "S-1", Price: decimal.RequireFromString("9.99"), StockQuantity: 3}
	assert.NoError(t, ok.Validate())
}

func TestLineValidate(t *testing.T) {
	bad := model.TransactionLine{ProductID: uuid.New(), Quantity: 0}
	var verr *apperr.ValidationError
	assert.ErrorAs(t, bad.Validate(), &verr)
	assert.Equal(t, "quantity", verr.Field)

	missing := model.TransactionLine{Quantity: 1}
	assert.ErrorAs(t, missing.Validate(), &verr)
	assert.Equal(t, "product_id", verr.Field)
}

func TestTypeNeedsSupplier(t *testing.T) {
	assert.False(t, model.TypeSale.NeedsSupplier())
	assert.True(t, model.TypePurchase.NeedsSupplier())
	assert.True(t, model.TypeReturnToSupplier.NeedsSupplier())
}
