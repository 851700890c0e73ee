package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type categoryDeleter interface {
	DeleteCategory(ctx context.Context, id uuid.UUID) (*service.Category, error)
}

// DeleteCategoryHandler handles DELETE /v1/categories/{id}. Transactions keep
// existing without a category; the category's budgets are removed.
type DeleteCategoryHandler struct {
	CategoryService categoryDeleter
}

func NewDeleteCategoryHandler(svc categoryDeleter) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/categories/{id}",
		Summary:       "Delete a category",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Categories"},
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *CategoryIDInput) (*struct{}, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if _, err = h.CategoryService.DeleteCategory(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete category")
	}
	return &struct{}{}, nil
}
