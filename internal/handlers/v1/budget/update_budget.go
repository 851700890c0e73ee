package budget

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type UpdateBudgetBody struct {
	Limit *string `json:"limit,omitempty" doc:"Positive decimal spending limit"`
}

type UpdateBudgetInput struct {
	ID   string `path:"id" format:"uuid" doc:"Budget UUID"`
	Body UpdateBudgetBody
}

type budgetUpdater interface {
	UpdateBudget(ctx context.Context, id uuid.UUID, update service.BudgetUpdate) (*service.Budget, error)
}

// UpdateBudgetHandler handles PUT /v1/budget/{id}. Only the limit can change.
type UpdateBudgetHandler struct {
	BudgetService budgetUpdater
}

func NewUpdateBudgetHandler(svc budgetUpdater) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc}
}

func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Update a budget limit",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*BudgetOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	var update service.BudgetUpdate
	if input.Body.Limit != nil {
		limit, err := apierr.ParseDecimal("limit", *input.Body.Limit)
		if err != nil {
			return nil, err
		}
		update.Limit = omit.From(limit)
	}

	budget, err := h.BudgetService.UpdateBudget(ctx, id, update)
	if err != nil {
		return nil, apierr.FromService(err, "failed to update budget")
	}
	return &BudgetOutput{Body: fromService(budget)}, nil
}
