package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"gorm.io/gorm"
)

type txKey struct{}

// Transactor implements outbound.Transactor on top of gorm transactions
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction runs fn in a transaction that repositories pick up from ctx.
// Nested calls reuse the outer transaction.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translateError maps driver errors onto the outbound sentinel errors
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return outbound.ErrNotFound
	}

	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") {
		return &outbound.DuplicateError{Field: duplicateField(msg)}
	}
	return err
}

func duplicateField(msg string) string {
	lower := strings.ToLower(msg)
	for _, field := range []string{"username", "email"} {
		if strings.Contains(lower, field) {
			return field
		}
	}
	return "id"
}
