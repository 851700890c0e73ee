package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// UpdateTransactionBody lists the amendable fields. Omitted fields are left
// unchanged; an empty categoryId or description clears it.
type UpdateTransactionBody struct {
	CategoryID  *string `json:"categoryId,omitempty" doc:"Category UUID, empty string to clear"`
	Amount      *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Type        *string `json:"type,omitempty" enum:"INCOME,EXPENSE" doc:"Direction of the transaction"`
	Description *string `json:"description,omitempty" doc:"Free text, empty string to clear"`
	Date        *string `json:"date,omitempty" format:"date-time" doc:"RFC3339 transaction date"`
}

type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, update service.TransactionUpdate) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update a transaction",
		Description: "Amends a transaction. A change of amount or type moves the account balance by the difference.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionBody(body *UpdateTransactionBody) (service.TransactionUpdate, error) {
	var update service.TransactionUpdate

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
	if body.Date != nil {
		date, err := apierr.ParseTime("date", *body.Date)
		if err != nil {
			return update, err
		}
		update.Date = omit.From(date)
	}
	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("updateTransactionMs")
	tx, err := h.TransactionService.UpdateTransaction(ctx, id, update)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to update transaction")
	}
	return &TransactionOutput{Body: fromService(tx)}, nil
}
