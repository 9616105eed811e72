package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports malformed input. Field names the offending field,
// Rule the rule it broke. Never retried automatically.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' broke rule '%s'", e.Field, e.Rule)
}

func Validation(field, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}

// NotFoundError reports an absent referenced entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InsufficientStockError reports a stock mutation that would drive a product
// quantity below zero. The operation it aborted was not applied at all.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError reports a transaction status change the state machine
// does not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ContentionError reports a bounded lock wait that timed out. Safe to retry.
type ContentionError struct {
	ProductID uuid.UUID
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("timed out waiting for stock lock on product %s", e.ProductID)
}

// ReferentialConflictError reports a delete blocked by existing references.
type ReferentialConflictError struct {
	Entity string
	Reason string
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s: %s", e.Entity, e.Reason)
}

// Kind predicates used by handlers when mapping errors to HTTP statuses.

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

func IsContention(err error) bool {
	var target *ContentionError
	return errors.As(err, &target)
}

func IsReferentialConflict(err error) bool {
	var target *ReferentialConflictError
	return errors.As(err, &target)
}
