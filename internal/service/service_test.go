package service

import (
	"context"
	"io"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/bookkeeping-server/internal/operator"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
)

func newTestService(t *testing.T, opts Options) (*Service, *storage.Storage) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := storage.NewMemoryStorage()
	op := operator.NewOperatorDelegator(store, 4, logger)
	op.Start()
	t.Cleanup(op.Stop)

	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.MinCost
	}
	return NewService(store, op, opts), store
}

func defaultTestService(t *testing.T) *Service {
	t.Helper()
	svc, _ := newTestService(t, DefaultOptions())
	return svc
}

func mustUser(t *testing.T, svc *Service, email string) *User {
	t.Helper()
	user, err := svc.User.CreateUser(context.Background(), UserCreate{
		Name:     "John Smith",
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func mustAccount(t *testing.T, svc *Service, userID uuid.UUID, name string) *Account {
	t.Helper()
	account, err := svc.Account.CreateAccount(context.Background(), AccountCreate{UserID: userID, Name: name})
	require.NoError(t, err)
	return account
}

func mustCategory(t *testing.T, svc *Service, accountID uuid.UUID, name string) *Category {
	t.Helper()
	category, err := svc.Category.CreateCategory(context.Background(), CategoryCreate{AccountID: accountID, Name: name})
	require.NoError(t, err)
	return category
}

func mustTransaction(t *testing.T, svc *Service, accountID uuid.UUID, amount string, txType TransactionType) *Transaction {
	t.Helper()
	tx, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
		Type:      txType,
	})
	require.NoError(t, err)
	return tx
}

func requireBalance(t *testing.T, svc *Service, accountID uuid.UUID, want string) {
	t.Helper()
	balance, err := svc.Account.GetBalance(context.Background(), accountID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString(want).Equal(balance), "balance = %s, want %s", balance, want)
}
