package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type budgetDeleter interface {
	DeleteBudget(ctx context.Context, id uuid.UUID) (*service.Budget, error)
}

// DeleteBudgetHandler handles DELETE /v1/budget/{id}.
type DeleteBudgetHandler struct {
	BudgetService budgetDeleter
}

func NewDeleteBudgetHandler(svc budgetDeleter) *DeleteBudgetHandler {
	return &DeleteBudgetHandler{BudgetService: svc}
}

func (h *DeleteBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget",
		Method:        http.MethodDelete,
		Path:          basePath + "/{id}",
		Summary:       "Delete a budget",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Budgets"},
	}, h.handle)
}

func (h *DeleteBudgetHandler) handle(ctx context.Context, input *BudgetIDInput) (*struct{}, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if _, err = h.BudgetService.DeleteBudget(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete budget")
	}
	return &struct{}{}, nil
}
