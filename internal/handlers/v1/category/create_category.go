package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type CreateCategoryBody struct {
	AccountID string `json:"accountId" format:"uuid" doc:"Owning account UUID"`
	Name      string `json:"name" minLength:"1" maxLength:"255" doc:"Category name"`
}

type CreateCategoryInput struct {
	Body CreateCategoryBody
}

type CreateCategoryOutput struct {
	Status int
	Body   Category
}

type categoryCreator interface {
	CreateCategory(ctx context.Context, create service.CategoryCreate) (*service.Category, error)
}

// CreateCategoryHandler handles POST /v1/categories.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
}

func NewCreateCategoryHandler(svc categoryCreator) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/categories",
		Summary:     "Create a category",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, err := apierr.ParseUUID("accountId", input.Body.AccountID)
	if err != nil {
		return nil, err
	}

	category, err := h.CategoryService.CreateCategory(ctx, service.CategoryCreate{
		AccountID: accountID,
		Name:      input.Body.Name,
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to create category")
	}

	logData.AddData("categoryID", category.ID.String())
	return &CreateCategoryOutput{Status: http.StatusCreated, Body: fromService(category)}, nil
}
