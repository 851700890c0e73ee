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

type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Deadline     *time.Time
	CreatedAt    time.Time
}

type GoalCreate struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time
}

type GoalUpdate struct {
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	SavedAmount  omit.Val[decimal.Decimal]
	Deadline     omitnull.Val[time.Time]
}

func goalFromStorage(row *sqlconfig.Goal) *Goal {
	return &Goal{
		ID:           row.ID,
		UserID:       row.UserID,
		Name:         row.Name,
		TargetAmount: row.TargetAmount,
		SavedAmount:  row.SavedAmount,
		Deadline:     row.Deadline.Ptr(),
		CreatedAt:    row.CreatedAt,
	}
}

// GoalService handles savings goal business logic.
type GoalService struct {
	storage     *storage.Storage
	uniqueNames bool
}

func NewGoalService(store *storage.Storage, opts Options) *GoalService {
	return &GoalService{storage: store, uniqueNames: opts.UniqueGoalNames}
}

func (s *GoalService) CreateGoal(ctx context.Context, create GoalCreate) (*Goal, error) {
	name, err := requireName("name", create.Name)
	if err != nil {
		return nil, err
	}
	if err = requirePositive("targetAmount", create.TargetAmount); err != nil {
		return nil, err
	}
	if _, err = s.storage.Users.FindByID(ctx, create.UserID); err != nil {
		return nil, notFound(err, "user", create.UserID)
	}
	if err = s.checkNameFree(ctx, create.UserID, uuid.Nil, name); err != nil {
		return nil, err
	}

	row, err := s.storage.Goals.Insert(ctx, &sqlconfig.GoalCreate{
		UserID:       create.UserID,
		Name:         name,
		TargetAmount: create.TargetAmount,
		Deadline:     null.FromPtr(create.Deadline),
	})
	if err != nil {
		return nil, missingParent(err, "user", create.UserID)
	}
	return goalFromStorage(row), nil
}

func (s *GoalService) GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	row, err := s.storage.Goals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "goal", id)
	}
	return goalFromStorage(row), nil
}

func (s *GoalService) ListGoalsByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	if _, err := s.storage.Users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, "user", userID)
	}
	rows, err := s.storage.Goals.ListByParent(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	goals := make([]Goal, len(rows))
	for i, row := range rows {
		goals[i] = *goalFromStorage(row)
	}
	return goals, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, id uuid.UUID, update GoalUpdate) (*Goal, error) {
	existing, err := s.storage.Goals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "goal", id)
	}

	patch := &sqlconfig.GoalPatch{Deadline: update.Deadline}
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
	if v, ok := update.TargetAmount.Get(); ok {
		if err := requirePositive("targetAmount", v); err != nil {
			return nil, err
		}
		patch.TargetAmount = omit.From(v)
	}
	if v, ok := update.SavedAmount.Get(); ok {
		if err := requireNonNegative("savedAmount", v, apperr.ErrNegativeAmount); err != nil {
			return nil, err
		}
		patch.SavedAmount = omit.From(v)
	}

	row, err := s.storage.Goals.Update(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, "goal", id)
	}
	return goalFromStorage(row), nil
}

// UpdateProgress adds delta to the goal's saved amount. Progress only moves forward.
func (s *GoalService) UpdateProgress(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Goal, error) {
	if _, err := s.storage.Goals.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "goal", id)
	}
	if err := requireNonNegative("delta", delta, apperr.ErrNegativeProgress); err != nil {
		return nil, err
	}

	row, err := s.storage.Goals.AddSavedAmount(ctx, id, delta)
	if err != nil {
		return nil, notFound(err, "goal", id)
	}
	return goalFromStorage(row), nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	if _, err := s.storage.Goals.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "goal", id)
	}
	row, err := s.storage.Goals.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "goal", id)
	}
	return goalFromStorage(row), nil
}

func (s *GoalService) checkNameFree(ctx context.Context, userID, self uuid.UUID, name string) error {
	if !s.uniqueNames {
		return nil
	}
	goals, err := s.storage.Goals.ListByParent(ctx, userID, nil)
	if err != nil {
		return err
	}
	for _, g := range goals {
		if g.ID != self && g.Name == name {
			return apperr.Conflict("goal", "name", apperr.ErrDuplicateName)
		}
	}
	return nil
}
