package budget

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

const basePath = "/v1/budget"

// Budget is the API response model for a monthly category budget.
type Budget struct {
	ID         string `json:"id" doc:"Budget UUID"`
	UserID     string `json:"userId" doc:"Owning user UUID"`
	CategoryID string `json:"categoryId" doc:"Budgeted category UUID"`
	Month      int    `json:"month" doc:"Month 1-12"`
	Year       int    `json:"year" doc:"Year 2000-2100"`
	Limit      string `json:"limit" doc:"Decimal spending limit"`
	CreatedAt  string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(b *service.Budget) Budget {
	return Budget{
		ID:         b.ID.String(),
		UserID:     b.UserID.String(),
		CategoryID: b.CategoryID.String(),
		Month:      b.Month,
		Year:       b.Year,
		Limit:      b.Limit.String(),
		CreatedAt:  apierr.FormatTime(b.CreatedAt),
	}
}

type BudgetIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Budget UUID"`
}

type BudgetOutput struct {
	Body Budget
}
