package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type accountDeleter interface {
	DeleteAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
}

// DeleteAccountHandler handles DELETE /v1/accounts/{id}. Accounts that still
// have transactions are refused with 409.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/accounts/{id}",
		Summary:       "Delete an account",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Accounts"},
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*struct{}, error) {
	logData := logging.GetLogData(ctx)

	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("deleteAccountMs")
	_, err = h.AccountService.DeleteAccount(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to delete account")
	}

	logData.AddData("accountID", id.String())
	return &struct{}{}, nil
}
