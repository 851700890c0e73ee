package sqlconfig

import "time"

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyAnnually Frequency = "ANNUALLY"
)

// ListFilter bounds a list query. Zero Limit means no limit.
type ListFilter struct {
	Limit  int
	Offset int
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}
