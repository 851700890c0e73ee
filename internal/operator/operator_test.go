package operator

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/operator/actions"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func newTestDelegator(t *testing.T, workers int) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	d := NewOperatorDelegator(store, workers, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d, store
}

func seedAccount(t *testing.T, store *storage.Storage) *sqlconfig.Account {
	t.Helper()
	ctx := context.Background()
	user, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{Name: "John", Email: "john@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	account, err := store.Accounts.Insert(ctx, &sqlconfig.AccountCreate{UserID: user.ID, Name: "Main"})
	require.NoError(t, err)
	return account
}

func TestProcess_RollsBackOnError(t *testing.T) {
	d, store := newTestDelegator(t, 1)
	account := seedAccount(t, store)
	boom := errors.New("boom")

	err := d.Process(context.Background(), funcAction(func(ctx context.Context, w *storage.Writer) error {
		if _, err := w.Accounts.IncrementBalance(ctx, account.ID, decimal.NewFromInt(10)); err != nil {
			return err
		}
		return boom
	}))
	assert.ErrorIs(t, err, boom)

	got, err := store.Accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}

func TestProcess_RecoversPanics(t *testing.T) {
	d, store := newTestDelegator(t, 1)
	account := seedAccount(t, store)

	err := d.Process(context.Background(), funcAction(func(ctx context.Context, w *storage.Writer) error {
		panic("kaboom")
	}))
	assert.ErrorContains(t, err, "kaboom")

	// The store lock must have been released by the rollback.
	_, err = store.Accounts.FindByID(context.Background(), account.ID)
	assert.NoError(t, err)
}

func TestProcess_ConcurrentBalanceUpdates(t *testing.T) {
	d, store := newTestDelegator(t, 4)
	account := seedAccount(t, store)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 1; i <= 50; i++ {
		txType := sqlconfig.TransactionTypeIncome
		if i%3 == 0 {
			txType = sqlconfig.TransactionTypeExpense
		}
		amount := decimal.NewFromInt(int64(i))
		g.Go(func() error {
			return d.Process(ctx, &actions.CreateTransaction{Create: sqlconfig.TransactionCreate{
				AccountID: account.ID,
				Amount:    amount,
				Type:      txType,
			}})
		})
	}
	require.NoError(t, g.Wait())

	expected := decimal.Zero
	for i := 1; i <= 50; i++ {
		delta := decimal.NewFromInt(int64(i))
		if i%3 == 0 {
			delta = delta.Neg()
		}
		expected = expected.Add(delta)
	}

	got, err := store.Accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, expected.Equal(got.Balance), "expected %s, got %s", expected, got.Balance)
}

func TestProcess_AfterStop(t *testing.T) {
	store := storage.NewMemoryStorage()
	d := NewOperatorDelegator(store, 1, nil)
	d.Start()
	d.Stop()

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))
	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CancelledContext(t *testing.T) {
	d, _ := newTestDelegator(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_AccumulatesOperatorTiming(t *testing.T) {
	d, _ := newTestDelegator(t, 2)
	logger := logrus.New()
	logData := logging.NewLogData(logger)
	ctx := logging.WithLogData(context.Background(), logData)

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error {
			return nil
		})))
	}

	entry := logData.Log()
	require.Contains(t, entry.Data, "operatorMs")
	assert.GreaterOrEqual(t, entry.Data["operatorMs"].(int64), int64(0))
}
