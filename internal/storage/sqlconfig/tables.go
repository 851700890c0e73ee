package sqlconfig

import "github.com/stephenafamo/bob"

// Tables groups every table accessor bound to one executor. The same set is
// built on the pool for reads and on a bob.Tx for writes.
type Tables struct {
	Users                 IUserTable
	Accounts              IAccountTable
	Categories            ICategoryTable
	Transactions          ITransactionTable
	RecurringTransactions IRecurringTransactionTable
	Budgets               IBudgetTable
	Goals                 IGoalTable
}

func NewTables(exec bob.Executor) Tables {
	return Tables{
		Users:                 NewUsersTable(exec),
		Accounts:              NewAccountsTable(exec),
		Categories:            NewCategoriesTable(exec),
		Transactions:          NewTransactionsTable(exec),
		RecurringTransactions: NewRecurringTransactionsTable(exec),
		Budgets:               NewBudgetsTable(exec),
		Goals:                 NewGoalsTable(exec),
	}
}
