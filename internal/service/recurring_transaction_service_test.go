package service

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
)

var recurringStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCreateRecurringTransaction_Validation(t *testing.T) {
	svc := defaultTestService(t)
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")
	before := recurringStart.AddDate(0, 0, -1)
	after := recurringStart.AddDate(1, 0, 0)

	valid := func() RecurringTransactionCreate {
		return RecurringTransactionCreate{
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(1200),
			Type:      TransactionTypeExpense,
			StartDate: recurringStart,
			Frequency: FrequencyMonthly,
		}
	}

	tests := []struct {
		name    string
		modify  func(c *RecurringTransactionCreate)
		wantErr error
	}{
		{name: "zero amount", modify: func(c *RecurringTransactionCreate) { c.Amount = decimal.Zero }, wantErr: apperr.ErrInvalidAmount},
		{name: "bad type", modify: func(c *RecurringTransactionCreate) { c.Type = "REFUND" }, wantErr: apperr.ErrInvalidTransactionType},
		{name: "bad frequency", modify: func(c *RecurringTransactionCreate) { c.Frequency = "HOURLY" }, wantErr: apperr.ErrInvalidFrequency},
		{name: "end before start", modify: func(c *RecurringTransactionCreate) { c.EndDate = &before }, wantErr: apperr.ErrInvalidDateRange},
		{name: "end equals start", modify: func(c *RecurringTransactionCreate) { c.EndDate = &recurringStart }},
		{name: "open ended", modify: func(c *RecurringTransactionCreate) {}},
		{name: "bounded", modify: func(c *RecurringTransactionCreate) { c.EndDate = &after; c.Frequency = FrequencyAnnually }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := valid()
			tt.modify(&create)

			rt, err := svc.RecurringTransaction.CreateRecurringTransaction(context.Background(), create)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Nil(t, rt.LastRun)
			assert.Equal(t, create.Frequency, rt.Frequency)
		})
	}

	// Recurring templates never touch the balance.
	requireBalance(t, svc, account.ID, "0")
}

func TestCreateRecurringTransaction_References(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	main := mustAccount(t, svc, user.ID, "Main")
	savings := mustAccount(t, svc, user.ID, "Savings")
	rent := mustCategory(t, svc, savings.ID, "Rent")

	create := RecurringTransactionCreate{
		AccountID:  main.ID,
		CategoryID: &rent.ID,
		Amount:     decimal.NewFromInt(1200),
		Type:       TransactionTypeExpense,
		StartDate:  recurringStart,
		Frequency:  FrequencyMonthly,
	}
	_, err := svc.RecurringTransaction.CreateRecurringTransaction(ctx, create)
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	create.AccountID = user.ID
	create.CategoryID = nil
	_, err = svc.RecurringTransaction.CreateRecurringTransaction(ctx, create)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateRecurringTransaction(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	account := mustAccount(t, svc, user.ID, "Main")
	end := recurringStart.AddDate(0, 6, 0)

	rt, err := svc.RecurringTransaction.CreateRecurringTransaction(ctx, RecurringTransactionCreate{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(50),
		Type:      TransactionTypeIncome,
		StartDate: recurringStart,
		EndDate:   &end,
		Frequency: FrequencyWeekly,
	})
	require.NoError(t, err)

	// Moving the start past the stored end date inverts the range.
	_, err = svc.RecurringTransaction.UpdateRecurringTransaction(ctx, rt.ID, RecurringTransactionUpdate{
		StartDate: omit.From(end.AddDate(0, 0, 1)),
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidDateRange)

	// A new end date is checked against the stored start date.
	_, err = svc.RecurringTransaction.UpdateRecurringTransaction(ctx, rt.ID, RecurringTransactionUpdate{
		EndDate: omitnull.From(recurringStart.AddDate(0, 0, -1)),
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidDateRange)

	// Clearing the end date in the same update makes it valid.
	lastRun := recurringStart.AddDate(0, 0, 7)
	updated, err := svc.RecurringTransaction.UpdateRecurringTransaction(ctx, rt.ID, RecurringTransactionUpdate{
		StartDate: omit.From(end.AddDate(0, 0, 1)),
		EndDate:   omitnull.FromPtr[time.Time](nil),
		LastRun:   omitnull.From(lastRun),
		Frequency: omit.From(FrequencyDaily),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)
	require.NotNil(t, updated.LastRun)
	assert.True(t, lastRun.Equal(*updated.LastRun))
	assert.Equal(t, FrequencyDaily, updated.Frequency)

	_, err = svc.RecurringTransaction.UpdateRecurringTransaction(ctx, rt.ID, RecurringTransactionUpdate{
		Amount: omit.From(decimal.NewFromInt(-3)),
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	_, err = svc.RecurringTransaction.UpdateRecurringTransaction(ctx, rt.ID, RecurringTransactionUpdate{
		Amount: omit.From(decimal.RequireFromString("10.00001")),
	})
	assert.ErrorIs(t, err, apperr.ErrAmountPrecision)

	list, err := svc.RecurringTransaction.ListRecurringTransactionsByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.RecurringTransaction.DeleteRecurringTransaction(ctx, rt.ID)
	require.NoError(t, err)
	_, err = svc.RecurringTransaction.DeleteRecurringTransaction(ctx, rt.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
