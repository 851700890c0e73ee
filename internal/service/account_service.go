package service

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/operator/actions"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op actionProcessor) *AccountService {
	return &AccountService{storage: store, operator: op}
}

// CreateAccount opens an account for an existing user. Names are unique per user.
func (s *AccountService) CreateAccount(ctx context.Context, create AccountCreate) (*Account, error) {
	name, err := requireName("name", create.Name)
	if err != nil {
		return nil, err
	}

	if _, err = s.storage.Users.FindByID(ctx, create.UserID); err != nil {
		return nil, notFound(err, "user", create.UserID)
	}
	if err = s.checkNameFree(ctx, create.UserID, uuid.Nil, name); err != nil {
		return nil, err
	}

	row, err := s.storage.Accounts.Insert(ctx, &sqlconfig.AccountCreate{
		UserID: create.UserID,
		Name:   name,
	})
	if err != nil {
		err = missingParent(err, "user", create.UserID)
		return nil, conflict(err, "account", "name", apperr.ErrDuplicateName)
	}
	return accountFromStorage(row), nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "account", id)
	}
	return accountFromStorage(row), nil
}

// GetBalance returns the stored running balance.
func (s *AccountService) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// ListAccountsByUser returns a page of the user's accounts using cursor pagination.
func (s *AccountService) ListAccountsByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor) ([]Account, *Cursor, error) {
	if _, err := s.storage.Users.FindByID(ctx, userID); err != nil {
		return nil, nil, notFound(err, "user", userID)
	}

	limit, offset := cursorWindow(cursor)
	rows, err := s.storage.Accounts.ListByParent(ctx, userID, &sqlconfig.ListFilter{
		Limit:  limit + 1,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	rows, more := trimPage(rows, limit)
	var nextCursor *Cursor
	if more {
		nextCursor = &Cursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = *accountFromStorage(row)
	}
	return accounts, nextCursor, nil
}

// UpdateAccount renames an account. The new name must be free among the user's other accounts.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, update AccountUpdate) (*Account, error) {
	existing, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "account", id)
	}

	patch := &sqlconfig.AccountPatch{}
	if v, ok := update.Name.Get(); ok {
		name, err := requireName("name", v)
		if err != nil {
			return nil, err
		}
		if err = s.checkNameFree(ctx, existing.UserID, id, name); err != nil {
			return nil, err
		}
		patch.Name = omit.From(name)
	}

	row, err := s.storage.Accounts.Update(ctx, id, patch)
	if err != nil {
		return nil, conflict(notFound(err, "account", id), "account", "name", apperr.ErrDuplicateName)
	}
	return accountFromStorage(row), nil
}

// DeleteAccount removes an account that has no transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	action := &actions.DeleteAccount{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return accountFromStorage(action.Result), nil
}

func (s *AccountService) checkNameFree(ctx context.Context, userID, self uuid.UUID, name string) error {
	accounts, err := s.storage.Accounts.ListByParent(ctx, userID, nil)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.ID != self && a.Name == name {
			return apperr.Conflict("account", "name", apperr.ErrDuplicateName)
		}
	}
	return nil
}
