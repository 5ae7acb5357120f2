package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies the errors returned by the document engines.
type Kind string

const (
	KindValidationFailed  Kind = "ValidationFailed"
	KindConflict          Kind = "ConflictError"
	KindStockInsufficient Kind = "StockInsufficientError"
	KindStorage           Kind = "StorageError"
	KindNotFound          Kind = "NotFound"
	KindUnknown           Kind = "Unknown"
)

// ValidationError carries the itemized verdict of a failed validation.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// ConflictError means a status precondition did not hold.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// StockInsufficientError names the line whose outbound movement would drive a
// position negative.
type StockInsufficientError struct {
	LineNo      int
	PartID      uuid.UUID
	WarehouseID uuid.UUID
	BinID       *uuid.UUID
	OnHand      decimal.Decimal
	Requested   decimal.Decimal
}

func (e *StockInsufficientError) Error() string {
	return fmt.Sprintf("line %d: insufficient stock for part %s in warehouse %s: on hand %s, requested %s",
		e.LineNo, e.PartID, e.WarehouseID, e.OnHand.String(), e.Requested.String())
}

// StorageError wraps a transaction failure. The call left nothing behind and
// may be retried as a whole.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// NotFoundError reports a missing document or catalog row.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found: " + e.ID }

// ErrorKind reports which typed error err is, if any.
func ErrorKind(err error) Kind {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		stockErr      *StockInsufficientError
		storageErr    *StorageError
		notFoundErr   *NotFoundError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return KindValidationFailed
	case errors.As(err, &conflictErr):
		return KindConflict
	case errors.As(err, &stockErr):
		return KindStockInsufficient
	case errors.As(err, &notFoundErr):
		return KindNotFound
	case errors.As(err, &storageErr):
		return KindStorage
	}
	return KindUnknown
}

// asStorageError leaves typed domain errors untouched and wraps everything else.
func asStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if ErrorKind(err) == KindUnknown {
		return &StorageError{Op: op, Err: err}
	}
	return err
}
