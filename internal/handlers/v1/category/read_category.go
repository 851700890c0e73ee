package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type categoryReader interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*service.Category, error)
	ListCategoriesByAccount(ctx context.Context, accountID uuid.UUID) ([]service.Category, error)
}

// ReadCategoryHandler serves GET /v1/categories/{id} and GET /v1/categories/account/{accountId}.
type ReadCategoryHandler struct {
	CategoryService categoryReader
}

func NewReadCategoryHandler(svc categoryReader) *ReadCategoryHandler {
	return &ReadCategoryHandler{CategoryService: svc}
}

func (h *ReadCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/categories/{id}",
		Summary:     "Get a category",
		Tags:        []string{"Categories"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories/account/{accountId}",
		Summary:     "List an account's categories",
		Description: "Returns every category of the account ordered by name.",
		Tags:        []string{"Categories"},
	}, h.list)
}

func (h *ReadCategoryHandler) get(ctx context.Context, input *CategoryIDInput) (*CategoryOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	category, err := h.CategoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get category")
	}
	return &CategoryOutput{Body: fromService(category)}, nil
}

type ListCategoriesInput struct {
	AccountID string `path:"accountId" format:"uuid" doc:"Account UUID"`
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Categories ordered by name"`
	}
}

func (h *ReadCategoryHandler) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := apierr.ParseUUID("accountId", input.AccountID)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listCategoriesMs")
	categories, err := h.CategoryService.ListCategoriesByAccount(ctx, accountID)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to list categories")
	}
	logData.AddData("categoryCount", len(categories))

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i := range categories {
		out.Body.Categories[i] = fromService(&categories[i])
	}
	return out, nil
}
