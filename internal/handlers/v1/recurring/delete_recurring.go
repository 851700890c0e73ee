package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type recurringDeleter interface {
	DeleteRecurringTransaction(ctx context.Context, id uuid.UUID) (*service.RecurringTransaction, error)
}

type DeleteRecurringHandler struct {
	Service recurringDeleter
}

func NewDeleteRecurringHandler(svc recurringDeleter) *DeleteRecurringHandler {
	return &DeleteRecurringHandler{Service: svc}
}

func (h *DeleteRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-recurring-transaction",
		Method:        http.MethodDelete,
		Path:          basePath + "/{id}",
		Summary:       "Delete a recurring transaction",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Recurring Transactions"},
	}, h.handle)
}

func (h *DeleteRecurringHandler) handle(ctx context.Context, input *RecurringIDInput) (*struct{}, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if _, err = h.Service.DeleteRecurringTransaction(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete recurring transaction")
	}
	return &struct{}{}, nil
}
