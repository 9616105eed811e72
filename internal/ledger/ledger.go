// Package ledger applies stock quantity changes to products. It is the only
// component allowed to mutate Product.StockQuantity. A batch of deltas is
// applied all-or-nothing and never drives any quantity below zero.
package ledger

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
)

// Store persists stock quantities. UpdateStock loads the current quantities
// for ids, passes them to compute, and writes the returned quantities as one
// atomic unit. A non-nil then runs inside that same unit after the quantities
// are written; if compute or then errors, nothing is persisted. A missing id
// fails with a not-found error.
type Store interface {
	UpdateStock(ctx context.Context, ids []uuid.UUID, compute func(current map[uuid.UUID]int) (map[uuid.UUID]int, error), then func(ctx context.Context) error) (map[uuid.UUID]int, error)
}

// Notifier receives the new quantities after a batch commits. Used to push
// stock updates to websocket clients.
type Notifier interface {
	StockChanged(quantities map[uuid.UUID]int)
}

type Ledger struct {
	store    Store
	locks    *lockTable
	timeout  time.Duration
	notifier Notifier
}

func New(store Store, lockTimeout time.Duration, notifier Notifier) *Ledger {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &Ledger{
		store:    store,
		locks:    newLockTable(),
		timeout:  lockTimeout,
		notifier: notifier,
	}
}

// ApplyDelta applies a single quantity change and returns the new quantity.
func (l *Ledger) ApplyDelta(ctx context.Context, productID uuid.UUID, delta int) (int, error) {
	updated, err := l.ApplyBatch(ctx, map[uuid.UUID]int{productID: delta})
	if err != nil {
		return 0, err
	}
	return updated[productID], nil
}

// ApplyBatch applies a set of per-product deltas as one unit. Either every
// delta is applied or none are. Locks are taken in ascending product-id
// order so overlapping batches cannot deadlock, and each acquisition is
// bounded by the configured timeout.
func (l *Ledger) ApplyBatch(ctx context.Context, deltas map[uuid.UUID]int) (map[uuid.UUID]int, error) {
	return l.ApplyBatchThen(ctx, deltas, nil)
}

// ApplyBatchThen applies the deltas and runs then inside the same persistence
// unit, so a caller can commit its own record change atomically with the
// stock write. An error from then rolls the whole batch back.
func (l *Ledger) ApplyBatchThen(ctx context.Context, deltas map[uuid.UUID]int, then func(ctx context.Context) error) (map[uuid.UUID]int, error) {
	if len(deltas) == 0 {
		if then != nil {
			if err := then(ctx); err != nil {
				return nil, err
			}
		}
		return map[uuid.UUID]int{}, nil
	}

	ids := sortedIDs(deltas)
	locked := make([]uuid.UUID, 0, len(ids))
	defer func() {
		for i := len(locked) - 1; i >= 0; i-- {
			l.locks.release(locked[i])
		}
	}()
	for _, id := range ids {
		if err := l.locks.acquire(ctx, id, l.timeout); err != nil {
			return nil, err
		}
		locked = append(locked, id)
	}

	updated, err := l.store.UpdateStock(ctx, ids, func(current map[uuid.UUID]int) (map[uuid.UUID]int, error) {
		next := make(map[uuid.UUID]int, len(ids))
		for _, id := range ids {
			qty, ok := current[id]
			if !ok {
				return nil, apperr.NotFound("product", id.String())
			}
			newQty := qty + deltas[id]
			if newQty < 0 {
				return nil, &apperr.InsufficientStockError{
					ProductID: id,
					Requested: -deltas[id],
					Available: qty,
				}
			}
			next[id] = newQty
		}
		return next, nil
	}, then)
	if err != nil {
		return nil, err
	}

	if l.notifier != nil {
		l.notifier.StockChanged(updated)
	}
	return updated, nil
}

func sortedIDs(deltas map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
