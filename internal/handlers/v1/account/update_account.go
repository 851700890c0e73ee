package account

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// UpdateAccountInput is the Huma input for renaming an account.
type UpdateAccountInput struct {
	ID   string `path:"id" format:"uuid" doc:"Account UUID"`
	Body struct {
		Name *string `json:"name,omitempty" minLength:"1" maxLength:"255" doc:"New account name"`
	}
}

type accountUpdater interface {
	UpdateAccount(ctx context.Context, id uuid.UUID, update service.AccountUpdate) (*service.Account, error)
}

// UpdateAccountHandler handles PUT /v1/accounts/{id}. The balance is not writable.
type UpdateAccountHandler struct {
	AccountService accountUpdater
}

func NewUpdateAccountHandler(svc accountUpdater) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/accounts/{id}",
		Summary:     "Update an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	account, err := h.AccountService.UpdateAccount(ctx, id, service.AccountUpdate{
		Name: omit.FromPtr(input.Body.Name),
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to update account")
	}
	return &AccountOutput{Body: fromService(account)}, nil
}
