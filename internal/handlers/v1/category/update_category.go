package category

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type UpdateCategoryInput struct {
	ID   string `path:"id" format:"uuid" doc:"Category UUID"`
	Body struct {
		Name *string `json:"name,omitempty" minLength:"1" maxLength:"255" doc:"New category name"`
	}
}

type categoryUpdater interface {
	UpdateCategory(ctx context.Context, id uuid.UUID, update service.CategoryUpdate) (*service.Category, error)
}

// UpdateCategoryHandler handles PUT /v1/categories/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryUpdater
}

func NewUpdateCategoryHandler(svc categoryUpdater) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPut,
		Path:        "/v1/categories/{id}",
		Summary:     "Rename a category",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	category, err := h.CategoryService.UpdateCategory(ctx, id, service.CategoryUpdate{
		Name: omit.FromPtr(input.Body.Name),
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to update category")
	}
	return &CategoryOutput{Body: fromService(category)}, nil
}
