package service

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// notFound turns a missing row into a NotFoundError. Other errors pass through.
func notFound(err error, entity string, id any) error {
	if errors.Is(err, sqlconfig.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

// conflict turns a unique index violation into a ConflictError.
func conflict(err error, entity, field string, reason error) error {
	if errors.Is(err, sqlconfig.ErrUniqueViolation) {
		return apperr.Conflict(entity, field, reason)
	}
	return err
}

// missingParent turns a foreign key violation into a NotFoundError for the parent.
func missingParent(err error, entity string, id any) error {
	if errors.Is(err, sqlconfig.ErrForeignKeyViolation) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Invalid(field, apperr.ErrEmptyName)
	}
	return name, nil
}

// moneyScale matches the NUMERIC(19,4) money columns.
const moneyScale = 4

// requireScale rejects amounts that storage would round.
func requireScale(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return apperr.Invalid(field, apperr.ErrAmountPrecision)
	}
	return nil
}

func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Invalid(field, apperr.ErrInvalidAmount)
	}
	return requireScale(field, amount)
}

func requireNonNegative(field string, amount decimal.Decimal, reason error) error {
	if amount.IsNegative() {
		return apperr.Invalid(field, reason)
	}
	return requireScale(field, amount)
}
