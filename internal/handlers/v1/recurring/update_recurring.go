package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// UpdateRecurringBody lists the amendable fields. Omitted fields are unchanged; an
// empty string clears a nullable field.
type UpdateRecurringBody struct {
	CategoryID  *string `json:"categoryId,omitempty" doc:"Category UUID, empty string to clear"`
	Amount      *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Type        *string `json:"type,omitempty" enum:"INCOME,EXPENSE" doc:"Direction of each occurrence"`
	Description *string `json:"description,omitempty" doc:"Free text, empty string to clear"`
	StartDate   *string `json:"startDate,omitempty" format:"date-time" doc:"RFC3339 first occurrence"`
	EndDate     *string `json:"endDate,omitempty" doc:"RFC3339 end, empty string to clear"`
	Frequency   *string `json:"frequency,omitempty" enum:"DAILY,WEEKLY,MONTHLY,ANNUALLY" doc:"Recurrence"`
	LastRun     *string `json:"lastRun,omitempty" doc:"RFC3339 time of the last run, empty string to clear"`
}

type UpdateRecurringInput struct {
	ID   string `path:"id" format:"uuid" doc:"Recurring transaction UUID"`
	Body UpdateRecurringBody
}

type recurringUpdater interface {
	UpdateRecurringTransaction(ctx context.Context, id uuid.UUID, update service.RecurringTransactionUpdate) (*service.RecurringTransaction, error)
}

type UpdateRecurringHandler struct {
	Service recurringUpdater
}

func NewUpdateRecurringHandler(svc recurringUpdater) *UpdateRecurringHandler {
	return &UpdateRecurringHandler{Service: svc}
}

func (h *UpdateRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-recurring-transaction",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Update a recurring transaction",
		Tags:        []string{"Recurring Transactions"},
	}, h.handle)
}

func optionalTime(field string, value *string) (omitnull.Val[time.Time], error) {
	if value == nil {
		return omitnull.Val[time.Time]{}, nil
	}
	t, err := apierr.ParseOptionalTime(field, *value)
	if err != nil {
		return omitnull.Val[time.Time]{}, err
	}
	return omitnull.FromPtr(t), nil
}

func parseUpdateRecurringBody(body *UpdateRecurringBody) (service.RecurringTransactionUpdate, error) {
	var update service.RecurringTransactionUpdate
	var err error

	if body.CategoryID != nil {
		categoryID, err := apierr.ParseOptionalUUID("categoryId", *body.CategoryID)
		if err != nil {
			return update, err
		}
		update.CategoryID = omitnull.FromPtr(categoryID)
	}
	if body.Amount != nil {
		amount, err := apierr.ParseDecimal("amount", *body.Amount)
		if err != nil {
			return update, err
		}
		update.Amount = omit.From(amount)
	}
	if body.Type != nil {
		update.Type = omit.From(service.TransactionType(*body.Type))
	}
	if body.Description != nil {
		if *body.Description == "" {
			update.Description = omitnull.FromPtr[string](nil)
		} else {
			update.Description = omitnull.From(*body.Description)
		}
	}
	if body.StartDate != nil {
		start, err := apierr.ParseTime("startDate", *body.StartDate)
		if err != nil {
			return update, err
		}
		update.StartDate = omit.From(start)
	}
	if update.EndDate, err = optionalTime("endDate", body.EndDate); err != nil {
		return update, err
	}
	if body.Frequency != nil {
		update.Frequency = omit.From(service.Frequency(*body.Frequency))
	}
	if update.LastRun, err = optionalTime("lastRun", body.LastRun); err != nil {
		return update, err
	}
	return update, nil
}

func (h *UpdateRecurringHandler) handle(ctx context.Context, input *UpdateRecurringInput) (*RecurringOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateRecurringBody(&input.Body)
	if err != nil {
		return nil, err
	}
	rt, err := h.Service.UpdateRecurringTransaction(ctx, id, update)
	if err != nil {
		return nil, apierr.FromService(err, "failed to update recurring transaction")
	}
	return &RecurringOutput{Body: fromService(rt)}, nil
}
