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

type userReader interface {
	GetUser(ctx context.Context, id uuid.UUID) (*service.User, error)
	GetUserByEmail(ctx context.Context, email string) (*service.User, error)
	ListUsers(ctx context.Context, cursor *service.Cursor) ([]service.User, *service.Cursor, error)
}

// ReadUserHandler serves the user lookup endpoints.
type ReadUserHandler struct {
	UserService userReader
}

func NewReadUserHandler(svc userReader) *ReadUserHandler {
	return &ReadUserHandler{UserService: svc}
}

func (h *ReadUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List users",
		Description: "Returns a paginated list of users ordered by creation time.",
		Tags:        []string{"Users"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get a user",
		Tags:        []string{"Users"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "get-user-by-email",
		Method:      http.MethodGet,
		Path:        basePath + "/email/{email}",
		Summary:     "Get a user by email",
		Tags:        []string{"Users"},
	}, h.getByEmail)
}

func (h *ReadUserHandler) get(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	user, err := h.UserService.GetUser(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get user")
	}
	return &UserOutput{Body: fromService(user)}, nil
}

type GetUserByEmailInput struct {
	Email string `path:"email" doc:"Email address"`
}

func (h *ReadUserHandler) getByEmail(ctx context.Context, input *GetUserByEmailInput) (*UserOutput, error) {
	user, err := h.UserService.GetUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get user")
	}
	return &UserOutput{Body: fromService(user)}, nil
}

type ListUsersCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

type ListUsersInput struct {
	Position int `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
}

type ListUsersOutput struct {
	Body struct {
		Users      []User           `json:"users" doc:"Page of users"`
		NextCursor *ListUsersCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
	}
}

func (h *ReadUserHandler) list(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("listUsersMs")
	users, next, err := h.UserService.ListUsers(ctx, &service.Cursor{Position: input.Position, Limit: input.Limit})
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to list users")
	}

	out := &ListUsersOutput{}
	out.Body.Users = make([]User, len(users))
	for i := range users {
		out.Body.Users[i] = fromService(&users[i])
	}
	if next != nil {
		out.Body.NextCursor = &ListUsersCursor{Position: next.Position, Limit: next.Limit}
	}
	return out, nil
}
