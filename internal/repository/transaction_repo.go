package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
)

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByPeriod(start, end time.Time) ([]model.Transaction, error)
	UpdateStatus(ctx context.Context, tx *model.Transaction) error
	CountByType() (map[model.TransactionType]int64, error)
	SumAmountByTypeAndStatus(txType model.TransactionType, status model.TransactionStatus) (decimal.Decimal, error)
	CountLinesByProduct(productID uuid.UUID) (int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create persists the transaction together with its lines in one database
// transaction.
func (r *transactionRepo) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Lines").Preload("Supplier").Preload("User").
		Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Lines").Preload("Supplier").Preload("User").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("transaction", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindByPeriod(start, end time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Lines").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}

// UpdateStatus writes status and audit fields. Lines are immutable after
// creation and are not touched. The write joins a transaction bound to ctx
// so the status change commits together with the stock batch that caused it.
func (r *transactionRepo) UpdateStatus(ctx context.Context, tx *model.Transaction) error {
	return conn(ctx, r.db).Model(&model.Transaction{}).
		Where("id = ?", tx.ID).
		Updates(map[string]interface{}{
			"status":     tx.Status,
			"updated_by": tx.UpdatedBy,
		}).Error
}

func (r *transactionRepo) CountByType() (map[model.TransactionType]int64, error) {
	type row struct {
		Type  model.TransactionType
		Total int64
	}
	var rows []row
	err := r.db.Model(&model.Transaction{}).
		Select("type, COUNT(*) as total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[model.TransactionType]int64{
		model.TypeSale:             0,
		model.TypePurchase:         0,
		model.TypeReturnToSupplier: 0,
	}
	for _, r := range rows {
		counts[r.Type] = r.Total
	}
	return counts, nil
}

func (r *transactionRepo) SumAmountByTypeAndStatus(txType model.TransactionType, status model.TransactionStatus) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&model.Transaction{}).
		Where("type = ? AND status = ?", txType, status).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// CountLinesByProduct counts historical transaction lines referencing the
// product, used to block product deletion.
func (r *transactionRepo) CountLinesByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.TransactionLine{}).
		Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
