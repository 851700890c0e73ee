//go:build integration

package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

func newPostgresStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("bookkeeping"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	status, err := Migrate(db)
	require.NoError(t, err)
	assert.Equal(t, uint(0), status.PreMigrationVersion)
	assert.Equal(t, uint(1), status.PostMigrationVersion)

	store := NewPostgresStorage(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgres_Constraints(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStorage(t)

	user, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = store.Users.Insert(ctx, &sqlconfig.UserCreate{Name: "Other", Email: "alice@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, sqlconfig.ErrUniqueViolation)

	_, err = store.Accounts.Insert(ctx, &sqlconfig.AccountCreate{UserID: uuid.Must(uuid.NewV4()), Name: "Orphan"})
	assert.ErrorIs(t, err, sqlconfig.ErrForeignKeyViolation)

	account, err := store.Accounts.Insert(ctx, &sqlconfig.AccountCreate{UserID: user.ID, Name: "Checking"})
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())

	_, err = store.Accounts.FindByID(ctx, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, sqlconfig.ErrRecordNotFound)

	category, err := store.Categories.Insert(ctx, &sqlconfig.CategoryCreate{AccountID: account.ID, Name: "Food"})
	require.NoError(t, err)
	tx, err := store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		AccountID:  account.ID,
		CategoryID: null.From(category.ID),
		Amount:     decimal.RequireFromString("12.3456"),
		Type:       sqlconfig.TransactionTypeExpense,
	})
	require.NoError(t, err)

	_, err = store.Categories.Delete(ctx, category.ID)
	require.NoError(t, err)
	tx, err = store.Transactions.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, tx.CategoryID.IsNull())

	count, err := store.Transactions.CountByParent(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = store.Users.Delete(ctx, user.ID)
	require.NoError(t, err)
	_, err = store.Transactions.FindByID(ctx, tx.ID)
	assert.ErrorIs(t, err, sqlconfig.ErrRecordNotFound)
}

func TestPostgres_WriterRollback(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStorage(t)

	user, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	account, err := store.Accounts.Insert(ctx, &sqlconfig.AccountCreate{UserID: user.ID, Name: "Checking"})
	require.NoError(t, err)

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	updated, err := writer.Accounts.IncrementBalance(ctx, account.ID, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(50)))
	require.NoError(t, writer.Rollback())

	account, err = store.Accounts.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())

	writer, err = store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Accounts.IncrementBalance(ctx, account.ID, decimal.NewFromInt(-20))
	require.NoError(t, err)
	require.NoError(t, writer.Commit())

	account, err = store.Accounts.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(-20)))
}
