package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionBody is the request body fields for creating a transaction.
type CreateTransactionBody struct {
	AccountID   string `json:"accountId" format:"uuid" doc:"Account UUID"`
	CategoryID  string `json:"categoryId,omitempty" doc:"Optional category UUID belonging to the same account"`
	Amount      string `json:"amount" doc:"Positive decimal amount (e.g. '12.50')"`
	Type        string `json:"type" enum:"INCOME,EXPENSE" doc:"INCOME adds to the balance, EXPENSE subtracts"`
	Description string `json:"description,omitempty" doc:"Free text"`
	Date        string `json:"date,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateTransactionOutput is the response for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transactions",
		Summary:     "Create a transaction",
		Description: "Records a transaction and applies its signed amount to the account balance in the same unit of work.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	accountID, err := apierr.ParseUUID("accountId", input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	categoryID, err := apierr.ParseOptionalUUID("categoryId", input.Body.CategoryID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	amount, err := apierr.ParseDecimal("amount", input.Body.Amount)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	date, err := apierr.ParseTime("date", input.Body.Date)
	if err != nil {
		return service.TransactionCreate{}, err
	}

	create := service.TransactionCreate{
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     amount,
		Type:       service.TransactionType(input.Body.Type),
		Date:       date,
	}
	if input.Body.Description != "" {
		description := input.Body.Description
		create.Description = &description
	}
	return create, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createTransactionMs")
	tx, err := h.TransactionService.CreateTransaction(ctx, create)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to create transaction")
	}

	logData.AddData("transactionID", tx.ID.String())

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   fromService(tx),
	}, nil
}
