package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type userDeleter interface {
	DeleteUser(ctx context.Context, id uuid.UUID) (*service.User, error)
}

// DeleteUserHandler handles DELETE /v1/users/{id}. The user's accounts,
// budgets and goals are removed with it.
type DeleteUserHandler struct {
	UserService userDeleter
}

func NewDeleteUserHandler(svc userDeleter) *DeleteUserHandler {
	return &DeleteUserHandler{UserService: svc}
}

func (h *DeleteUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-user",
		Method:        http.MethodDelete,
		Path:          basePath + "/{id}",
		Summary:       "Delete a user",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Users"},
	}, h.handle)
}

func (h *DeleteUserHandler) handle(ctx context.Context, input *UserIDInput) (*struct{}, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("userID", id.String())
	if _, err = h.UserService.DeleteUser(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete user")
	}
	return &struct{}{}, nil
}
