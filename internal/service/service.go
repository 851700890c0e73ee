package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/bookkeeping-server/internal/operator/actions"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
)

// actionProcessor runs a multi-row write in one storage transaction.
// *operator.OperatorDelegator satisfies it.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options toggles the configurable invariants.
type Options struct {
	UniqueCategoryNames bool
	UniqueGoalNames     bool
	BcryptCost          int
}

func DefaultOptions() Options {
	return Options{
		UniqueCategoryNames: true,
		UniqueGoalNames:     false,
		BcryptCost:          bcrypt.DefaultCost,
	}
}

// Service holds all business logic services.
type Service struct {
	User                 *UserService
	Account              *AccountService
	Category             *CategoryService
	Transaction          *TransactionService
	RecurringTransaction *RecurringTransactionService
	Budget               *BudgetService
	Goal                 *GoalService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, op actionProcessor, opts Options) *Service {
	return &Service{
		User:                 NewUserService(store, opts),
		Account:              NewAccountService(store, op),
		Category:             NewCategoryService(store, opts),
		Transaction:          NewTransactionService(store, op),
		RecurringTransaction: NewRecurringTransactionService(store),
		Budget:               NewBudgetService(store),
		Goal:                 NewGoalService(store, opts),
	}
}
