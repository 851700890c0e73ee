package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, create service.AccountCreate) (*service.Account, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Account), args.Error(1)
}

func (m *mockAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Account), args.Error(1)
}

func (m *mockAccountService) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockAccountService) ListAccountsByUser(ctx context.Context, userID uuid.UUID, cursor *service.Cursor) ([]service.Account, *service.Cursor, error) {
	args := m.Called(ctx, userID, cursor)
	var next *service.Cursor
	if c := args.Get(1); c != nil {
		next = c.(*service.Cursor)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]service.Account), next, args.Error(2)
}

func (m *mockAccountService) UpdateAccount(ctx context.Context, id uuid.UUID, update service.AccountUpdate) (*service.Account, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Account), args.Error(1)
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Account), args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	NewGetAccountHandler(svc).Register(api)
	NewGetBalanceHandler(svc).Register(api)
	NewListAccountsHandler(svc).Register(api)
	NewUpdateAccountHandler(svc).Register(api)
	NewDeleteAccountHandler(svc).Register(api)
	return api
}

func sampleAccount(userID uuid.UUID, name string) *service.Account {
	return &service.Account{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    userID,
		Name:      name,
		Balance:   decimal.RequireFromString("70.25"),
		CreatedAt: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	created := sampleAccount(userID, "Main")
	created.Balance = decimal.Zero

	mockSvc := new(mockAccountService)
	mockSvc.On("CreateAccount", mock.Anything, service.AccountCreate{UserID: userID, Name: "Main"}).Return(created, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/accounts", CreateAccountBody{UserID: userID.String(), Name: "Main"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "0", body.Balance)
	assert.Equal(t, "2025-01-15T10:30:00Z", body.CreatedAt)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_Errors(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "unknown user", serviceErr: apperr.NotFound("user", userID), wantStatus: http.StatusNotFound},
		{name: "duplicate name", serviceErr: apperr.Conflict("account", "name", apperr.ErrDuplicateName), wantStatus: http.StatusConflict},
		{name: "blank name", serviceErr: apperr.Invalid("name", apperr.ErrEmptyName), wantStatus: http.StatusBadRequest},
		{name: "storage failure", serviceErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockAccountService)
			mockSvc.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			resp := newTestAPI(t, mockSvc).Post("/v1/accounts", CreateAccountBody{UserID: userID.String(), Name: "Main"})
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHTTP_CreateAccount_InvalidUserID(t *testing.T) {
	mockSvc := new(mockAccountService)

	resp := newTestAPI(t, mockSvc).Post("/v1/accounts", map[string]any{"userId": "nope", "name": "Main"})

	assert.GreaterOrEqual(t, resp.Code, http.StatusBadRequest)
	assert.Less(t, resp.Code, http.StatusInternalServerError)
	mockSvc.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestHTTP_GetAccount(t *testing.T) {
	account := sampleAccount(uuid.Must(uuid.NewV4()), "Main")
	missing := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("GetAccount", mock.Anything, account.ID).Return(account, nil)
	mockSvc.On("GetAccount", mock.Anything, missing).Return(nil, apperr.NotFound("account", missing))
	api := newTestAPI(t, mockSvc)

	resp := api.Get("/v1/accounts/" + account.ID.String())
	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "70.25", body.Balance)

	resp = api.Get("/v1/accounts/" + missing.String())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetBalance(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockAccountService)
	mockSvc.On("GetBalance", mock.Anything, id).Return(decimal.RequireFromString("-30"), nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/accounts/" + id.String() + "/balance")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		ID      string `json:"id"`
		Balance string `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "-30", body.Balance)
}

func TestHTTP_ListAccounts(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accounts := []service.Account{*sampleAccount(userID, "A"), *sampleAccount(userID, "B")}

	mockSvc := new(mockAccountService)
	mockSvc.On("ListAccountsByUser", mock.Anything, userID, &service.Cursor{Position: 0, Limit: 2}).
		Return(accounts, &service.Cursor{Position: 2, Limit: 2}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/accounts/user/" + userID.String() + "?limit=2")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Accounts, 2)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 2, body.NextCursor.Position)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpdateAccount(t *testing.T) {
	account := sampleAccount(uuid.Must(uuid.NewV4()), "Checking")

	mockSvc := new(mockAccountService)
	mockSvc.On("UpdateAccount", mock.Anything, account.ID, mock.MatchedBy(func(u service.AccountUpdate) bool {
		name, ok := u.Name.Get()
		return ok && name == "Checking"
	})).Return(account, nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/accounts/"+account.ID.String(), map[string]any{"name": "Checking"})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	blocked := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("DeleteAccount", mock.Anything, id).Return(&service.Account{ID: id}, nil)
	mockSvc.On("DeleteAccount", mock.Anything, blocked).
		Return(nil, &apperr.DependencyError{Entity: "account", ID: blocked.String(), Dependent: "transactions", Count: 2})
	api := newTestAPI(t, mockSvc)

	resp := api.Delete("/v1/accounts/" + id.String())
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Delete("/v1/accounts/" + blocked.String())
	assert.Equal(t, http.StatusConflict, resp.Code)
}
