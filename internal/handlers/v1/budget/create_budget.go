package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type CreateBudgetBody struct {
	UserID     string `json:"userId" format:"uuid" doc:"Owning user UUID"`
	CategoryID string `json:"categoryId" format:"uuid" doc:"Category UUID"`
	Month      int    `json:"month" doc:"Month 1-12"`
	Year       int    `json:"year" doc:"Year 2000-2100"`
	Limit      string `json:"limit" doc:"Positive decimal spending limit"`
}

type CreateBudgetInput struct {
	Body CreateBudgetBody
}

type CreateBudgetOutput struct {
	Status int
	Body   Budget
}

type budgetCreator interface {
	CreateBudget(ctx context.Context, create service.BudgetCreate) (*service.Budget, error)
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        basePath,
		Summary:     "Create a budget",
		Description: "Sets a spending limit for one category and month. A user has at most one budget per category and month.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	userID, err := apierr.ParseUUID("userId", input.Body.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := apierr.ParseUUID("categoryId", input.Body.CategoryID)
	if err != nil {
		return nil, err
	}
	limit, err := apierr.ParseDecimal("limit", input.Body.Limit)
	if err != nil {
		return nil, err
	}

	budget, err := h.BudgetService.CreateBudget(ctx, service.BudgetCreate{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      input.Body.Month,
		Year:       input.Body.Year,
		Limit:      limit,
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to create budget")
	}

	logging.GetLogData(ctx).AddData("budgetID", budget.ID.String())
	return &CreateBudgetOutput{Status: http.StatusCreated, Body: fromService(budget)}, nil
}
