package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
)

// lockTable hands out one semaphore per product so concurrent deltas on the
// same product are serialized. Acquisition is bounded: waiting longer than
// the timeout fails with a retryable contention error instead of hanging.
type lockTable struct {
	mu   sync.Mutex
	sems map[uuid.UUID]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{sems: make(map[uuid.UUID]chan struct{})}
}

func (t *lockTable) sem(id uuid.UUID) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	sem, ok := t.sems[id]
	if !ok {
		sem = make(chan struct{}, 1)
		t.sems[id] = sem
	}
	return sem
}

func (t *lockTable) acquire(ctx context.Context, id uuid.UUID, timeout time.Duration) error {
	sem := t.sem(id)
	select {
	case sem <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		// Cancellation is the caller's decision, not lock pressure; do not
		// report it as retryable.
		return ctx.Err()
	case <-timer.C:
		return &apperr.ContentionError{ProductID: id}
	}
}

func (t *lockTable) release(id uuid.UUID) {
	<-t.sem(id)
}
