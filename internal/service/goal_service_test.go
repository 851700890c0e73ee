package service

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
)

func mustGoal(t *testing.T, svc *Service, userID uuid.UUID, name, target string) *Goal {
	t.Helper()
	goal, err := svc.Goal.CreateGoal(context.Background(), GoalCreate{
		UserID:       userID,
		Name:         name,
		TargetAmount: decimal.RequireFromString(target),
	})
	require.NoError(t, err)
	return goal
}

func TestCreateGoal(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	deadline := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)

	goal, err := svc.Goal.CreateGoal(ctx, GoalCreate{
		UserID:       user.ID,
		Name:         "Car",
		TargetAmount: decimal.NewFromInt(5000),
		Deadline:     &deadline,
	})
	require.NoError(t, err)
	assert.True(t, goal.SavedAmount.IsZero())
	require.NotNil(t, goal.Deadline)
	assert.True(t, deadline.Equal(*goal.Deadline))

	_, err = svc.Goal.CreateGoal(ctx, GoalCreate{UserID: user.ID, Name: "Car", TargetAmount: decimal.Zero})
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	_, err = svc.Goal.CreateGoal(ctx, GoalCreate{UserID: user.ID, Name: " ", TargetAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperr.ErrEmptyName)

	_, err = svc.Goal.CreateGoal(ctx, GoalCreate{UserID: uuid.Must(uuid.NewV4()), Name: "Car", TargetAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Duplicate goal names are allowed unless configured otherwise.
	_, err = svc.Goal.CreateGoal(ctx, GoalCreate{UserID: user.ID, Name: "Car", TargetAmount: decimal.NewFromInt(1)})
	assert.NoError(t, err)
}

func TestCreateGoal_UniqueNames(t *testing.T) {
	opts := DefaultOptions()
	opts.UniqueGoalNames = true
	svc, _ := newTestService(t, opts)
	user := mustUser(t, svc, "john@example.com")
	mustGoal(t, svc, user.ID, "Car", "5000")

	_, err := svc.Goal.CreateGoal(context.Background(), GoalCreate{UserID: user.ID, Name: "Car", TargetAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)
}

func TestUpdateProgress(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	goal := mustGoal(t, svc, user.ID, "Car", "5000")

	updated, err := svc.Goal.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, "250", updated.SavedAmount.String())

	updated, err = svc.Goal.UpdateProgress(ctx, goal.ID, decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "250.5", updated.SavedAmount.String())

	updated, err = svc.Goal.UpdateProgress(ctx, goal.ID, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "250.5", updated.SavedAmount.String())

	_, err = svc.Goal.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperr.ErrNegativeProgress)

	_, err = svc.Goal.UpdateProgress(ctx, goal.ID, decimal.RequireFromString("0.00001"))
	assert.ErrorIs(t, err, apperr.ErrAmountPrecision)

	// A missing goal is reported before the delta is inspected.
	_, err = svc.Goal.UpdateProgress(ctx, uuid.Must(uuid.NewV4()), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateGoal(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	goal, err := svc.Goal.CreateGoal(ctx, GoalCreate{
		UserID: user.ID, Name: "Car", TargetAmount: decimal.NewFromInt(5000), Deadline: &deadline,
	})
	require.NoError(t, err)

	_, err = svc.Goal.UpdateGoal(ctx, goal.ID, GoalUpdate{SavedAmount: omit.From(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, apperr.ErrNegativeAmount)

	_, err = svc.Goal.UpdateGoal(ctx, goal.ID, GoalUpdate{TargetAmount: omit.From(decimal.Zero)})
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	updated, err := svc.Goal.UpdateGoal(ctx, goal.ID, GoalUpdate{
		Name:        omit.From("House"),
		SavedAmount: omit.From(decimal.NewFromInt(10)),
		Deadline:    omitnull.FromPtr[time.Time](nil),
	})
	require.NoError(t, err)
	assert.Equal(t, "House", updated.Name)
	assert.Equal(t, "10", updated.SavedAmount.String())
	assert.Nil(t, updated.Deadline)
}

func TestDeleteGoal_Twice(t *testing.T) {
	svc := defaultTestService(t)
	ctx := context.Background()
	user := mustUser(t, svc, "john@example.com")
	goal := mustGoal(t, svc, user.ID, "Car", "5000")

	_, err := svc.Goal.DeleteGoal(ctx, goal.ID)
	require.NoError(t, err)
	_, err = svc.Goal.DeleteGoal(ctx, goal.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	goals, err := svc.Goal.ListGoalsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
