package user

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type UpdateUserBody struct {
	Name     *string `json:"name,omitempty" doc:"Display name"`
	Email    *string `json:"email,omitempty" doc:"Unique email address"`
	Password *string `json:"password,omitempty" doc:"New password, rehashed on change"`
}

type UpdateUserInput struct {
	ID   string `path:"id" format:"uuid" doc:"User UUID"`
	Body UpdateUserBody
}

type userUpdater interface {
	UpdateUser(ctx context.Context, id uuid.UUID, update service.UserUpdate) (*service.User, error)
}

// UpdateUserHandler handles PUT /v1/users/{id}.
type UpdateUserHandler struct {
	UserService userUpdater
}

func NewUpdateUserHandler(svc userUpdater) *UpdateUserHandler {
	return &UpdateUserHandler{UserService: svc}
}

func (h *UpdateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Update a user",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *UpdateUserHandler) handle(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	user, err := h.UserService.UpdateUser(ctx, id, service.UserUpdate{
		Name:     omit.FromPtr(input.Body.Name),
		Email:    omit.FromPtr(input.Body.Email),
		Password: omit.FromPtr(input.Body.Password),
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to update user")
	}
	return &UserOutput{Body: fromService(user)}, nil
}
