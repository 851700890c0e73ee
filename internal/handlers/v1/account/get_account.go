package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type accountGetter interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/accounts/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*AccountOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("getAccountMs")
	account, err := h.AccountService.GetAccount(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to get account")
	}
	return &AccountOutput{Body: fromService(account)}, nil
}

// BalanceOutput is the response for reading an account balance.
type BalanceOutput struct {
	Body struct {
		ID      string `json:"id" doc:"Account UUID"`
		Balance string `json:"balance" doc:"Decimal running balance"`
	}
}

type balanceReader interface {
	GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

// GetBalanceHandler handles GET /v1/accounts/{id}/balance.
type GetBalanceHandler struct {
	AccountService balanceReader
}

func NewGetBalanceHandler(svc balanceReader) *GetBalanceHandler {
	return &GetBalanceHandler{AccountService: svc}
}

func (h *GetBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account-balance",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}/balance",
		Summary:     "Get an account balance",
		Description: "Returns the stored running balance: the sum of income minus the sum of expenses.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetBalanceHandler) handle(ctx context.Context, input *AccountIDInput) (*BalanceOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	balance, err := h.AccountService.GetBalance(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get balance")
	}

	out := &BalanceOutput{}
	out.Body.ID = id.String()
	out.Body.Balance = balance.String()
	return out, nil
}
