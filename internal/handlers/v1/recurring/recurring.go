package recurring

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

const basePath = "/v1/recurringTransaction"

// RecurringTransaction is the API response model for a recurring transaction template.
type RecurringTransaction struct {
	ID          string  `json:"id" doc:"Recurring transaction UUID"`
	AccountID   string  `json:"accountId" doc:"Account UUID"`
	CategoryID  *string `json:"categoryId,omitempty" doc:"Category UUID"`
	Amount      string  `json:"amount" doc:"Positive decimal amount"`
	Type        string  `json:"type" doc:"INCOME or EXPENSE"`
	Description *string `json:"description,omitempty" doc:"Free text"`
	StartDate   string  `json:"startDate" doc:"RFC3339 first occurrence"`
	EndDate     *string `json:"endDate,omitempty" doc:"RFC3339 last possible occurrence"`
	Frequency   string  `json:"frequency" doc:"DAILY, WEEKLY, MONTHLY or ANNUALLY"`
	LastRun     *string `json:"lastRun,omitempty" doc:"RFC3339 time of the last recorded run"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(rt *service.RecurringTransaction) RecurringTransaction {
	out := RecurringTransaction{
		ID:          rt.ID.String(),
		AccountID:   rt.AccountID.String(),
		Amount:      rt.Amount.String(),
		Type:        string(rt.Type),
		Description: rt.Description,
		StartDate:   apierr.FormatTime(rt.StartDate),
		EndDate:     apierr.FormatOptionalTime(rt.EndDate),
		Frequency:   string(rt.Frequency),
		LastRun:     apierr.FormatOptionalTime(rt.LastRun),
		CreatedAt:   apierr.FormatTime(rt.CreatedAt),
	}
	if rt.CategoryID != nil {
		id := rt.CategoryID.String()
		out.CategoryID = &id
	}
	return out
}

type RecurringIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Recurring transaction UUID"`
}

type RecurringOutput struct {
	Body RecurringTransaction
}
