package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/operator/actions"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// TransactionService handles transaction business logic. Every write goes
// through the operator so the row and the account balance change together.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// CreateTransaction records a transaction and applies its signed amount to the account balance.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (*Transaction, error) {
	if err := requirePositive("amount", create.Amount); err != nil {
		return nil, err
	}
	if err := create.Type.validate("type"); err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{Create: sqlconfig.TransactionCreate{
		AccountID:   create.AccountID,
		CategoryID:  null.FromPtr(create.CategoryID),
		Amount:      create.Amount,
		Type:        transactionTypeToStorage(create.Type),
		Description: null.FromPtr(create.Description),
		Date:        create.Date,
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transactionFromStorage(action.Result), nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return transactionFromStorage(row), nil
}

// ListTransactionsByAccount returns a page of the account's transactions, most recent
// first, using cursor-based pagination.
func (s *TransactionService) ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	if _, err := s.storage.Accounts.FindByID(ctx, accountID); err != nil {
		return nil, nil, notFound(err, "account", accountID)
	}

	// The first page pins the snapshot so rows created while paging do not shift offsets.
	snapshot := time.Now().UTC()
	var maxCreationTime *time.Time
	limit, offset := defaultLimit, 0
	if cursor != nil {
		limit, offset = cursorWindow(&Cursor{Position: cursor.Position, Limit: cursor.Limit})
		if !cursor.MaxCreationTime.IsZero() {
			snapshot = cursor.MaxCreationTime
			maxCreationTime = &snapshot
		}
	}

	rows, err := s.storage.Transactions.ListByParent(ctx, accountID, &sqlconfig.TransactionFilter{
		Limit:           limit + 1,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	})
	if err != nil {
		return nil, nil, err
	}

	rows, more := trimPage(rows, limit)
	var nextCursor *TransactionCursor
	if more {
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: snapshot,
		}
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = *transactionFromStorage(row)
	}
	return transactions, nextCursor, nil
}

// UpdateTransaction amends a transaction. A change of amount or type moves the
// account balance by the difference.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, update TransactionUpdate) (*Transaction, error) {
	patch := sqlconfig.TransactionPatch{
		CategoryID:  update.CategoryID,
		Description: update.Description,
		Date:        update.Date,
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

	action := &actions.UpdateTransaction{ID: id, Patch: patch}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transactionFromStorage(action.Result), nil
}

// DeleteTransaction removes a transaction and reverses its effect on the balance.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	action := &actions.DeleteTransaction{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transactionFromStorage(action.Result), nil
}
