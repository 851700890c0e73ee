package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// TransactionType is the direction of a transaction. Amounts are always positive.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

func (t TransactionType) validate(field string) error {
	if t != TransactionTypeIncome && t != TransactionTypeExpense {
		return apperr.Invalid(field, apperr.ErrInvalidTransactionType)
	}
	return nil
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Description *string
	Date        time.Time
	CreatedAt   time.Time
}

// TransactionCreate is the input for recording a transaction. A zero Date means now.
type TransactionCreate struct {
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Description *string
	Date        time.Time
}

// TransactionUpdate lists the amendable fields.
type TransactionUpdate struct {
	CategoryID  omitnull.Val[uuid.UUID]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[TransactionType]
	Description omitnull.Val[string]
	Date        omit.Val[time.Time]
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *sqlconfig.Transaction) *Transaction {
	return &Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID.Ptr(),
		Amount:      row.Amount,
		Type:        TransactionType(row.Type),
		Description: row.Description.Ptr(),
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
	}
}

func transactionTypeToStorage(t TransactionType) sqlconfig.TransactionType {
	return sqlconfig.TransactionType(t)
}
