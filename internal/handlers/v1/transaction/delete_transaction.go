package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transactions/{id}",
		Summary:       "Delete a transaction",
		Description:   "Removes a transaction and reverses its effect on the account balance.",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*struct{}, error) {
	logData := logging.GetLogData(ctx)

	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("deleteTransactionMs")
	_, err = h.TransactionService.DeleteTransaction(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to delete transaction")
	}

	logData.AddData("transactionID", id.String())
	return &struct{}{}, nil
}
