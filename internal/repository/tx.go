package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// withTx binds an open database transaction to the context so repository
// writes made by callbacks join it instead of committing on their own.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction bound to ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db
}
