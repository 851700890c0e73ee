package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type CreateUserBody struct {
	Name     string `json:"name" doc:"Display name, 3-255 characters"`
	Email    string `json:"email" doc:"Unique email address"`
	Password string `json:"password" doc:"Password, 8-32 characters"`
}

type CreateUserInput struct {
	Body CreateUserBody
}

type CreateUserOutput struct {
	Status int
	Body   User
}

type userCreator interface {
	CreateUser(ctx context.Context, create service.UserCreate) (*service.User, error)
}

// CreateUserHandler handles POST /v1/users.
type CreateUserHandler struct {
	UserService userCreator
}

func NewCreateUserHandler(svc userCreator) *CreateUserHandler {
	return &CreateUserHandler{UserService: svc}
}

func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        basePath,
		Summary:     "Create a user",
		Description: "Registers a user. The password is stored as a bcrypt hash.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("createUserMs")
	user, err := h.UserService.CreateUser(ctx, service.UserCreate{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to create user")
	}

	logData.AddData("userID", user.ID.String())
	return &CreateUserOutput{Status: http.StatusCreated, Body: fromService(user)}, nil
}
