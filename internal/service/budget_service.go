package service

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

const (
	minBudgetYear = 2000
	maxBudgetYear = 2100
)

type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
	Limit      decimal.Decimal
	CreatedAt  time.Time
}

type BudgetCreate struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
	Limit      decimal.Decimal
}

type BudgetUpdate struct {
	Limit omit.Val[decimal.Decimal]
}

func budgetFromStorage(row *sqlconfig.Budget) *Budget {
	return &Budget{
		ID:         row.ID,
		UserID:     row.UserID,
		CategoryID: row.CategoryID,
		Month:      row.Month,
		Year:       row.Year,
		Limit:      row.Limit,
		CreatedAt:  row.CreatedAt,
	}
}

// BudgetService handles budget business logic. A user has at most one budget
// per category and month.
type BudgetService struct {
	storage *storage.Storage
}

func NewBudgetService(store *storage.Storage) *BudgetService {
	return &BudgetService{storage: store}
}

func (s *BudgetService) CreateBudget(ctx context.Context, create BudgetCreate) (*Budget, error) {
	if create.Month < 1 || create.Month > 12 {
		return nil, apperr.Invalid("month", apperr.ErrInvalidPeriod)
	}
	if create.Year < minBudgetYear || create.Year > maxBudgetYear {
		return nil, apperr.Invalid("year", apperr.ErrInvalidPeriod)
	}
	if err := requirePositive("limit", create.Limit); err != nil {
		return nil, err
	}

	if _, err := s.storage.Users.FindByID(ctx, create.UserID); err != nil {
		return nil, notFound(err, "user", create.UserID)
	}
	category, err := s.storage.Categories.FindByID(ctx, create.CategoryID)
	if err != nil {
		return nil, notFound(err, "category", create.CategoryID)
	}
	account, err := s.storage.Accounts.FindByID(ctx, category.AccountID)
	if err != nil {
		return nil, notFound(err, "account", category.AccountID)
	}
	if account.UserID != create.UserID {
		return nil, apperr.Invalid("categoryId", apperr.ErrInvalidReference)
	}

	_, err = s.storage.Budgets.FindByPeriod(ctx, create.UserID, create.CategoryID, create.Month, create.Year)
	switch {
	case err == nil:
		return nil, apperr.Conflict("budget", "period", apperr.ErrDuplicateBudget)
	case !errors.Is(err, sqlconfig.ErrRecordNotFound):
		return nil, err
	}

	row, err := s.storage.Budgets.Insert(ctx, &sqlconfig.BudgetCreate{
		UserID:     create.UserID,
		CategoryID: create.CategoryID,
		Month:      create.Month,
		Year:       create.Year,
		Limit:      create.Limit,
	})
	if err != nil {
		return nil, conflict(err, "budget", "period", apperr.ErrDuplicateBudget)
	}
	return budgetFromStorage(row), nil
}

func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error) {
	row, err := s.storage.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "budget", id)
	}
	return budgetFromStorage(row), nil
}

// ListBudgetsByUser returns the user's budgets, most recent period first.
func (s *BudgetService) ListBudgetsByUser(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	if _, err := s.storage.Users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, "user", userID)
	}
	rows, err := s.storage.Budgets.ListByParent(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	budgets := make([]Budget, len(rows))
	for i, row := range rows {
		budgets[i] = *budgetFromStorage(row)
	}
	return budgets, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, id uuid.UUID, update BudgetUpdate) (*Budget, error) {
	if _, err := s.storage.Budgets.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "budget", id)
	}

	patch := &sqlconfig.BudgetPatch{}
	if v, ok := update.Limit.Get(); ok {
		if err := requirePositive("limit", v); err != nil {
			return nil, err
		}
		patch.Limit = omit.From(v)
	}

	row, err := s.storage.Budgets.Update(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, "budget", id)
	}
	return budgetFromStorage(row), nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) (*Budget, error) {
	if _, err := s.storage.Budgets.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "budget", id)
	}
	row, err := s.storage.Budgets.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "budget", id)
	}
	return budgetFromStorage(row), nil
}
