package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-inventory-api/internal/model"
)

// stockStore is the GORM implementation of ledger.Store. The read, the
// writes and the then callback all happen inside one database transaction
// with the rows locked, so a batch is either fully visible or not at all.
type stockStore struct {
	db *gorm.DB
}

func NewStockStore(db *gorm.DB) *stockStore {
	return &stockStore{db}
}

func (s *stockStore) UpdateStock(ctx context.Context, ids []uuid.UUID, compute func(current map[uuid.UUID]int) (map[uuid.UUID]int, error), then func(ctx context.Context) error) (map[uuid.UUID]int, error) {
	var updated map[uuid.UUID]int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "stock_quantity").
			Find(&products, "id IN ?", ids).Error; err != nil {
			return err
		}

		current := make(map[uuid.UUID]int, len(products))
		for _, p := range products {
			current[p.ID] = p.StockQuantity
		}

		next, err := compute(current)
		if err != nil {
			return err
		}

		for id, qty := range next {
			if qty == current[id] {
				continue
			}
			res := tx.Model(&model.Product{}).
				Where("id = ?", id).
				Update("stock_quantity", qty)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.New("stock update affected no rows")
			}
		}
		if then != nil {
			if err := then(withTx(ctx, tx)); err != nil {
				return err
			}
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
