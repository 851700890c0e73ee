package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type mockUserTable struct {
	mock.Mock
	sqlconfig.IUserTable
}

func (m *mockUserTable) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqlconfig.User), args.Error(1)
}

type mockAccountTable struct {
	mock.Mock
	sqlconfig.IAccountTable
}

func (m *mockAccountTable) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqlconfig.Account), args.Error(1)
}

func (m *mockAccountTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *sqlconfig.ListFilter) ([]*sqlconfig.Account, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sqlconfig.Account), args.Error(1)
}

func (m *mockAccountTable) Insert(ctx context.Context, create *sqlconfig.AccountCreate) (*sqlconfig.Account, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqlconfig.Account), args.Error(1)
}

func TestAccountLifecycle(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()

	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")
	assert.True(t, account.Balance.IsZero())

	income := mustTransaction(t, svc, account.ID, "100", TransactionTypeIncome)
	requireBalance(t, svc, account.ID, "100")

	expense := mustTransaction(t, svc, account.ID, "30", TransactionTypeExpense)
	requireBalance(t, svc, account.ID, "70")

	_, err := svc.Account.DeleteAccount(ctx, account.ID)
	var depErr *apperr.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, int64(2), depErr.Count)
	assert.ErrorIs(t, err, apperr.ErrHasDependents)

	_, err = svc.Transaction.DeleteTransaction(ctx, income.ID)
	require.NoError(t, err)
	requireBalance(t, svc, account.ID, "-30")

	_, err = svc.Transaction.DeleteTransaction(ctx, expense.ID)
	require.NoError(t, err)
	requireBalance(t, svc, account.ID, "0")

	deleted, err := svc.Account.DeleteAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, deleted.ID)

	_, err = svc.Account.GetAccount(ctx, account.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateAccount_DuplicateName(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()

	john := mustUser(t, svc, "john@example.com")
	jane := mustUser(t, svc, "jane@example.com")
	mustAccount(t, svc, john.ID, "Main")

	_, err := svc.Account.CreateAccount(ctx, AccountCreate{UserID: john.ID, Name: "Main"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	_, err = svc.Account.CreateAccount(ctx, AccountCreate{UserID: jane.ID, Name: "Main"})
	assert.NoError(t, err)
}

func TestCreateAccount_Validation(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")

	_, err := svc.Account.CreateAccount(ctx, AccountCreate{UserID: user.ID, Name: "   "})
	assert.ErrorIs(t, err, apperr.ErrEmptyName)

	_, err = svc.Account.CreateAccount(ctx, AccountCreate{UserID: uuid.Must(uuid.NewV4()), Name: "Main"})
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Entity)
}

func TestUpdateAccount(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	main := mustAccount(t, svc, user.ID, "Main")
	mustAccount(t, svc, user.ID, "Savings")

	_, err := svc.Account.UpdateAccount(ctx, main.ID, AccountUpdate{Name: omit.From("Savings")})
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	// Renaming to the current name is not a conflict with itself.
	updated, err := svc.Account.UpdateAccount(ctx, main.ID, AccountUpdate{Name: omit.From("Main")})
	require.NoError(t, err)
	assert.Equal(t, "Main", updated.Name)

	updated, err = svc.Account.UpdateAccount(ctx, main.ID, AccountUpdate{Name: omit.From("Checking")})
	require.NoError(t, err)
	assert.Equal(t, "Checking", updated.Name)

	_, err = svc.Account.UpdateAccount(ctx, uuid.Must(uuid.NewV4()), AccountUpdate{Name: omit.From("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteAccount_Twice(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")

	_, err := svc.Account.DeleteAccount(ctx, account.ID)
	require.NoError(t, err)

	_, err = svc.Account.DeleteAccount(ctx, account.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListAccountsByUser_Pagination(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	for _, name := range []string{"A", "B", "C"} {
		mustAccount(t, svc, user.ID, name)
	}

	page, next, err := svc.Account.ListAccountsByUser(ctx, user.ID, &Cursor{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, "A", page[0].Name)
	assert.Equal(t, "B", page[1].Name)

	page, next, err = svc.Account.ListAccountsByUser(ctx, user.ID, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Name)
	assert.Nil(t, next)
}

func TestGetBalance_NotFound(t *testing.T) {
	svc := defaultTestService(t)

	_, err := svc.Account.GetBalance(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateAccount_StorageFailure(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	boom := errors.New("connection reset")

	users := &mockUserTable{}
	users.On("FindByID", mock.Anything, userID).Return(&sqlconfig.User{ID: userID}, nil)
	accounts := &mockAccountTable{}
	accounts.On("ListByParent", mock.Anything, userID, mock.Anything).Return([]*sqlconfig.Account{}, nil)
	accounts.On("Insert", mock.Anything, mock.MatchedBy(func(c *sqlconfig.AccountCreate) bool {
		return c.UserID == userID && c.Name == "Main"
	})).Return(nil, boom)

	store := &storage.Storage{Tables: sqlconfig.Tables{Users: users, Accounts: accounts}}
	svc := NewAccountService(store, nil)

	_, err := svc.CreateAccount(context.Background(), AccountCreate{UserID: userID, Name: "Main"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
	users.AssertExpectations(t)
	accounts.AssertExpectations(t)
}

func TestCreateAccount_RacingDuplicateInsert(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	users := &mockUserTable{}
	users.On("FindByID", mock.Anything, userID).Return(&sqlconfig.User{ID: userID}, nil)
	accounts := &mockAccountTable{}
	accounts.On("ListByParent", mock.Anything, userID, mock.Anything).Return([]*sqlconfig.Account{}, nil)
	accounts.On("Insert", mock.Anything, mock.Anything).Return(nil, sqlconfig.ErrUniqueViolation)

	store := &storage.Storage{Tables: sqlconfig.Tables{Users: users, Accounts: accounts}}
	svc := NewAccountService(store, nil)

	_, err := svc.CreateAccount(context.Background(), AccountCreate{UserID: userID, Name: "Main"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)
}

func TestGetAccount_StorageFailure(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	boom := errors.New("timeout")
	accounts := &mockAccountTable{}
	accounts.On("FindByID", mock.Anything, id).Return(nil, boom)

	svc := NewAccountService(&storage.Storage{Tables: sqlconfig.Tables{Accounts: accounts}}, nil)

	_, err := svc.GetAccount(context.Background(), id)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}
