package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type CreateRecurringBody struct {
	AccountID   string `json:"accountId" format:"uuid" doc:"Account UUID"`
	CategoryID  string `json:"categoryId,omitempty" doc:"Optional category UUID belonging to the same account"`
	Amount      string `json:"amount" doc:"Positive decimal amount"`
	Type        string `json:"type" enum:"INCOME,EXPENSE" doc:"Direction of each occurrence"`
	Description string `json:"description,omitempty" doc:"Free text"`
	StartDate   string `json:"startDate" format:"date-time" doc:"RFC3339 first occurrence"`
	EndDate     string `json:"endDate,omitempty" format:"date-time" doc:"RFC3339 last possible occurrence"`
	Frequency   string `json:"frequency" enum:"DAILY,WEEKLY,MONTHLY,ANNUALLY" doc:"Recurrence"`
}

type CreateRecurringInput struct {
	Body CreateRecurringBody
}

type CreateRecurringOutput struct {
	Status int
	Body   RecurringTransaction
}

type recurringCreator interface {
	CreateRecurringTransaction(ctx context.Context, create service.RecurringTransactionCreate) (*service.RecurringTransaction, error)
}

// CreateRecurringHandler handles POST /v1/recurringTransaction.
type CreateRecurringHandler struct {
	Service recurringCreator
}

func NewCreateRecurringHandler(svc recurringCreator) *CreateRecurringHandler {
	return &CreateRecurringHandler{Service: svc}
}

func (h *CreateRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-recurring-transaction",
		Method:      http.MethodPost,
		Path:        basePath,
		Summary:     "Create a recurring transaction",
		Description: "Stores a schedule template. Templates never move the account balance.",
		Tags:        []string{"Recurring Transactions"},
	}, h.handle)
}

func parseCreateRecurringInput(input *CreateRecurringInput) (service.RecurringTransactionCreate, error) {
	var create service.RecurringTransactionCreate
	var err error

	if create.AccountID, err = apierr.ParseUUID("accountId", input.Body.AccountID); err != nil {
		return create, err
	}
	if create.CategoryID, err = apierr.ParseOptionalUUID("categoryId", input.Body.CategoryID); err != nil {
		return create, err
	}
	if create.Amount, err = apierr.ParseDecimal("amount", input.Body.Amount); err != nil {
		return create, err
	}
	if create.StartDate, err = apierr.ParseTime("startDate", input.Body.StartDate); err != nil {
		return create, err
	}
	if create.EndDate, err = apierr.ParseOptionalTime("endDate", input.Body.EndDate); err != nil {
		return create, err
	}
	create.Type = service.TransactionType(input.Body.Type)
	create.Frequency = service.Frequency(input.Body.Frequency)
	if input.Body.Description != "" {
		description := input.Body.Description
		create.Description = &description
	}
	return create, nil
}

func (h *CreateRecurringHandler) handle(ctx context.Context, input *CreateRecurringInput) (*CreateRecurringOutput, error) {
	create, err := parseCreateRecurringInput(input)
	if err != nil {
		return nil, err
	}

	rt, err := h.Service.CreateRecurringTransaction(ctx, create)
	if err != nil {
		return nil, apierr.FromService(err, "failed to create recurring transaction")
	}

	logging.GetLogData(ctx).AddData("recurringTransactionID", rt.ID.String())
	return &CreateRecurringOutput{Status: http.StatusCreated, Body: fromService(rt)}, nil
}
