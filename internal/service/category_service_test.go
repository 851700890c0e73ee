package service

import (
	"context"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
)

func TestCreateCategory_UniqueNames(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	main := mustAccount(t, svc, user.ID, "Main")
	savings := mustAccount(t, svc, user.ID, "Savings")
	mustCategory(t, svc, main.ID, "Food")

	_, err := svc.Category.CreateCategory(ctx, CategoryCreate{AccountID: main.ID, Name: "Food"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	_, err = svc.Category.CreateCategory(ctx, CategoryCreate{AccountID: savings.ID, Name: "Food"})
	assert.NoError(t, err)
}

func TestCreateCategory_DuplicatesAllowed(t *testing.T) {
	opts := DefaultOptions()
	opts.UniqueCategoryNames = false
	svc, _ := newTestService(t, opts)
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")

	mustCategory(t, svc, account.ID, "Food")
	mustCategory(t, svc, account.ID, "Food")

	categories, err := svc.Category.ListCategoriesByAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")

	_, err := svc.Category.CreateCategory(ctx, CategoryCreate{AccountID: account.ID, Name: ""})
	assert.ErrorIs(t, err, apperr.ErrEmptyName)

	_, err = svc.Category.CreateCategory(ctx, CategoryCreate{AccountID: user.ID, Name: "Food"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateCategory(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")
	food := mustCategory(t, svc, account.ID, "Food")
	mustCategory(t, svc, account.ID, "Rent")

	_, err := svc.Category.UpdateCategory(ctx, food.ID, CategoryUpdate{Name: omit.From("Rent")})
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	updated, err := svc.Category.UpdateCategory(ctx, food.ID, CategoryUpdate{Name: omit.From("Groceries")})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Name)
}

func TestDeleteCategory_KeepsTransactions(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")
	food := mustCategory(t, svc, account.ID, "Food")

	tx, err := svc.Transaction.CreateTransaction(ctx, TransactionCreate{
		AccountID:  account.ID,
		CategoryID: &food.ID,
		Amount:     decimal.NewFromInt(12),
		Type:       TransactionTypeExpense,
	})
	require.NoError(t, err)
	budget, err := svc.Budget.CreateBudget(ctx, BudgetCreate{
		UserID: user.ID, CategoryID: food.ID, Month: 3, Year: 2025, Limit: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	_, err = svc.Category.DeleteCategory(ctx, food.ID)
	require.NoError(t, err)

	kept, err := svc.Transaction.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.CategoryID)
	requireBalance(t, svc, account.ID, "-12")

	_, err = svc.Budget.GetBudget(ctx, budget.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Category.DeleteCategory(ctx, food.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
