package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyAnnually Frequency = "ANNUALLY"
)

func (f Frequency) validate(field string) error {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyAnnually:
		return nil
	default:
		return apperr.Invalid(field, apperr.ErrInvalidFrequency)
	}
}

// RecurringTransaction is a schedule template. LastRun is recorded data; the
// service never executes schedules itself.
type RecurringTransaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	Frequency   Frequency
	LastRun     *time.Time
	CreatedAt   time.Time
}

type RecurringTransactionCreate struct {
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	Frequency   Frequency
}

type RecurringTransactionUpdate struct {
	CategoryID  omitnull.Val[uuid.UUID]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[TransactionType]
	Description omitnull.Val[string]
	StartDate   omit.Val[time.Time]
	EndDate     omitnull.Val[time.Time]
	Frequency   omit.Val[Frequency]
	LastRun     omitnull.Val[time.Time]
}

func recurringTransactionFromStorage(row *sqlconfig.RecurringTransaction) *RecurringTransaction {
	return &RecurringTransaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID.Ptr(),
		Amount:      row.Amount,
		Type:        TransactionType(row.Type),
		Description: row.Description.Ptr(),
		StartDate:   row.StartDate,
		EndDate:     row.EndDate.Ptr(),
		Frequency:   Frequency(row.Frequency),
		LastRun:     row.LastRun.Ptr(),
		CreatedAt:   row.CreatedAt,
	}
}

// RecurringTransactionService handles recurring transaction business logic.
type RecurringTransactionService struct {
	storage *storage.Storage
}

func NewRecurringTransactionService(store *storage.Storage) *RecurringTransactionService {
	return &RecurringTransactionService{storage: store}
}

func (s *RecurringTransactionService) CreateRecurringTransaction(ctx context.Context, create RecurringTransactionCreate) (*RecurringTransaction, error) {
	if err := requirePositive("amount", create.Amount); err != nil {
		return nil, err
	}
	if err := create.Type.validate("type"); err != nil {
		return nil, err
	}
	if err := create.Frequency.validate("frequency"); err != nil {
		return nil, err
	}
	if err := validateDateRange(create.StartDate, create.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.storage.Accounts.FindByID(ctx, create.AccountID); err != nil {
		return nil, notFound(err, "account", create.AccountID)
	}
	if create.CategoryID != nil {
		if err := s.checkCategory(ctx, create.AccountID, *create.CategoryID); err != nil {
			return nil, err
		}
	}

	row, err := s.storage.RecurringTransactions.Insert(ctx, &sqlconfig.RecurringTransactionCreate{
		AccountID:   create.AccountID,
		CategoryID:  null.FromPtr(create.CategoryID),
		Amount:      create.Amount,
		Type:        transactionTypeToStorage(create.Type),
		Description: null.FromPtr(create.Description),
		StartDate:   create.StartDate,
		EndDate:     null.FromPtr(create.EndDate),
		Frequency:   sqlconfig.Frequency(create.Frequency),
	})
	if err != nil {
		return nil, missingParent(err, "account", create.AccountID)
	}
	return recurringTransactionFromStorage(row), nil
}

func (s *RecurringTransactionService) GetRecurringTransaction(ctx context.Context, id uuid.UUID) (*RecurringTransaction, error) {
	row, err := s.storage.RecurringTransactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "recurring transaction", id)
	}
	return recurringTransactionFromStorage(row), nil
}

func (s *RecurringTransactionService) ListRecurringTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]RecurringTransaction, error) {
	if _, err := s.storage.Accounts.FindByID(ctx, accountID); err != nil {
		return nil, notFound(err, "account", accountID)
	}
	rows, err := s.storage.RecurringTransactions.ListByParent(ctx, accountID, nil)
	if err != nil {
		return nil, err
	}
	out := make([]RecurringTransaction, len(rows))
	for i, row := range rows {
		out[i] = *recurringTransactionFromStorage(row)
	}
	return out, nil
}

func (s *RecurringTransactionService) UpdateRecurringTransaction(ctx context.Context, id uuid.UUID, update RecurringTransactionUpdate) (*RecurringTransaction, error) {
	existing, err := s.storage.RecurringTransactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "recurring transaction", id)
	}

	patch := &sqlconfig.RecurringTransactionPatch{
		CategoryID:  update.CategoryID,
		Description: update.Description,
		StartDate:   update.StartDate,
		EndDate:     update.EndDate,
		LastRun:     update.LastRun,
	}
	if v, ok := update.Amount.Get(); ok {
		if err := requirePositive("amount", v); err != nil {
			return nil, err
		}
		patch.Amount = omit.From(v)
	}
	if v, ok := update.Type.Get(); ok {
		if err := v.validate("type"); err != nil {
			return nil, err
		}
		patch.Type = omit.From(transactionTypeToStorage(v))
	}
	if v, ok := update.Frequency.Get(); ok {
		if err := v.validate("frequency"); err != nil {
			return nil, err
		}
		patch.Frequency = omit.From(sqlconfig.Frequency(v))
	}

	// The range is checked on the merged values so a partial update cannot invert it.
	startDate := update.StartDate.GetOr(existing.StartDate)
	endDate := existing.EndDate.Ptr()
	if !update.EndDate.IsUnset() {
		endDate = nil
		if v, ok := update.EndDate.Get(); ok {
			endDate = &v
		}
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	if categoryID, ok := update.CategoryID.Get(); ok {
		if err := s.checkCategory(ctx, existing.AccountID, categoryID); err != nil {
			return nil, err
		}
	}

	row, err := s.storage.RecurringTransactions.Update(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, "recurring transaction", id)
	}
	return recurringTransactionFromStorage(row), nil
}

func (s *RecurringTransactionService) DeleteRecurringTransaction(ctx context.Context, id uuid.UUID) (*RecurringTransaction, error) {
	if _, err := s.storage.RecurringTransactions.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "recurring transaction", id)
	}
	row, err := s.storage.RecurringTransactions.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "recurring transaction", id)
	}
	return recurringTransactionFromStorage(row), nil
}

func (s *RecurringTransactionService) checkCategory(ctx context.Context, accountID, categoryID uuid.UUID) error {
	category, err := s.storage.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return notFound(err, "category", categoryID)
	}
	if category.AccountID != accountID {
		return apperr.Invalid("categoryId", apperr.ErrInvalidReference)
	}
	return nil
}

func validateDateRange(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return apperr.Invalid("endDate", apperr.ErrInvalidDateRange)
	}
	return nil
}
