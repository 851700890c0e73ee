package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// AccountCreate is the input for opening an account. Balance always starts at zero.
type AccountCreate struct {
	UserID uuid.UUID
	Name   string
}

// AccountUpdate lists the fields a caller may change. Balance is not one of them.
type AccountUpdate struct {
	Name omit.Val[string]
}

func accountFromStorage(row *sqlconfig.Account) *Account {
	return &Account{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}
