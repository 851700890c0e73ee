package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type budgetReader interface {
	GetBudget(ctx context.Context, id uuid.UUID) (*service.Budget, error)
	ListBudgetsByUser(ctx context.Context, userID uuid.UUID) ([]service.Budget, error)
}

// ReadBudgetHandler serves GET /v1/budget/{id} and GET /v1/budget/user/{userId}.
type ReadBudgetHandler struct {
	BudgetService budgetReader
}

func NewReadBudgetHandler(svc budgetReader) *ReadBudgetHandler {
	return &ReadBudgetHandler{BudgetService: svc}
}

func (h *ReadBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get a budget",
		Tags:        []string{"Budgets"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        basePath + "/user/{userId}",
		Summary:     "List a user's budgets",
		Description: "Returns the user's budgets, most recent period first.",
		Tags:        []string{"Budgets"},
	}, h.list)
}

func (h *ReadBudgetHandler) get(ctx context.Context, input *BudgetIDInput) (*BudgetOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	budget, err := h.BudgetService.GetBudget(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get budget")
	}
	return &BudgetOutput{Body: fromService(budget)}, nil
}

type ListBudgetsInput struct {
	UserID string `path:"userId" format:"uuid" doc:"Owning user UUID"`
}

type ListBudgetsOutput struct {
	Body struct {
		Budgets []Budget `json:"budgets" doc:"Budgets, most recent period first"`
	}
}

func (h *ReadBudgetHandler) list(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	userID, err := apierr.ParseUUID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	budgets, err := h.BudgetService.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, apierr.FromService(err, "failed to list budgets")
	}

	out := &ListBudgetsOutput{}
	out.Body.Budgets = make([]Budget, len(budgets))
	for i := range budgets {
		out.Body.Budgets[i] = fromService(&budgets[i])
	}
	return out, nil
}
