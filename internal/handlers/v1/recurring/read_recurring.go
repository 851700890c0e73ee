package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type recurringReader interface {
	GetRecurringTransaction(ctx context.Context, id uuid.UUID) (*service.RecurringTransaction, error)
	ListRecurringTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]service.RecurringTransaction, error)
}

type ReadRecurringHandler struct {
	Service recurringReader
}

func NewReadRecurringHandler(svc recurringReader) *ReadRecurringHandler {
	return &ReadRecurringHandler{Service: svc}
}

func (h *ReadRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-recurring-transaction",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get a recurring transaction",
		Tags:        []string{"Recurring Transactions"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "list-recurring-transactions",
		Method:      http.MethodGet,
		Path:        basePath + "/account/{accountId}",
		Summary:     "List an account's recurring transactions",
		Tags:        []string{"Recurring Transactions"},
	}, h.list)
}

func (h *ReadRecurringHandler) get(ctx context.Context, input *RecurringIDInput) (*RecurringOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	rt, err := h.Service.GetRecurringTransaction(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get recurring transaction")
	}
	return &RecurringOutput{Body: fromService(rt)}, nil
}

type ListRecurringInput struct {
	AccountID string `path:"accountId" format:"uuid" doc:"Account UUID"`
}

type ListRecurringOutput struct {
	Body struct {
		RecurringTransactions []RecurringTransaction `json:"recurringTransactions" doc:"Templates ordered by start date"`
	}
}

func (h *ReadRecurringHandler) list(ctx context.Context, input *ListRecurringInput) (*ListRecurringOutput, error) {
	accountID, err := apierr.ParseUUID("accountId", input.AccountID)
	if err != nil {
		return nil, err
	}
	list, err := h.Service.ListRecurringTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, apierr.FromService(err, "failed to list recurring transactions")
	}

	out := &ListRecurringOutput{}
	out.Body.RecurringTransactions = make([]RecurringTransaction, len(list))
	for i := range list {
		out.Body.RecurringTransactions[i] = fromService(&list[i])
	}
	return out, nil
}
