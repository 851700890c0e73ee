package recurring

import (
	"context"
	"encoding/json"
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

type mockRecurringService struct {
	mock.Mock
}

func (m *mockRecurringService) result(args mock.Arguments) (*service.RecurringTransaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecurringTransaction), args.Error(1)
}

func (m *mockRecurringService) CreateRecurringTransaction(ctx context.Context, create service.RecurringTransactionCreate) (*service.RecurringTransaction, error) {
	return m.result(m.Called(ctx, create))
}

func (m *mockRecurringService) GetRecurringTransaction(ctx context.Context, id uuid.UUID) (*service.RecurringTransaction, error) {
	return m.result(m.Called(ctx, id))
}

func (m *mockRecurringService) ListRecurringTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]service.RecurringTransaction, error) {
	args := m.Called(ctx, accountID)
	list, _ := args.Get(0).([]service.RecurringTransaction)
	return list, args.Error(1)
}

func (m *mockRecurringService) UpdateRecurringTransaction(ctx context.Context, id uuid.UUID, update service.RecurringTransactionUpdate) (*service.RecurringTransaction, error) {
	return m.result(m.Called(ctx, id, update))
}

func (m *mockRecurringService) DeleteRecurringTransaction(ctx context.Context, id uuid.UUID) (*service.RecurringTransaction, error) {
	return m.result(m.Called(ctx, id))
}

func newTestAPI(t *testing.T, svc *mockRecurringService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateRecurringHandler(svc).Register(api)
	NewReadRecurringHandler(svc).Register(api)
	NewUpdateRecurringHandler(svc).Register(api)
	NewDeleteRecurringHandler(svc).Register(api)
	return api
}

func sampleRecurring(accountID uuid.UUID) *service.RecurringTransaction {
	return &service.RecurringTransaction{
		ID:        uuid.Must(uuid.NewV4()),
		AccountID: accountID,
		Amount:    decimal.NewFromInt(1200),
		Type:      service.TransactionTypeExpense,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Frequency: service.FrequencyMonthly,
		CreatedAt: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseCreateRecurringInput(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	create, err := parseCreateRecurringInput(&CreateRecurringInput{Body: CreateRecurringBody{
		AccountID: accountID.String(),
		Amount:    "1200",
		Type:      "EXPENSE",
		StartDate: "2025-01-01T00:00:00Z",
		EndDate:   "2025-12-01T00:00:00Z",
		Frequency: "MONTHLY",
	}})
	require.NoError(t, err)
	assert.Equal(t, accountID, create.AccountID)
	assert.Nil(t, create.CategoryID)
	require.NotNil(t, create.EndDate)
	assert.Equal(t, 12, int(create.EndDate.Month()))
	assert.Equal(t, service.FrequencyMonthly, create.Frequency)
}

func TestParseUpdateRecurringBody_ClearsEndDate(t *testing.T) {
	empty := ""
	lastRun := "2025-02-01T00:00:00Z"

	update, err := parseUpdateRecurringBody(&UpdateRecurringBody{EndDate: &empty, LastRun: &lastRun})
	require.NoError(t, err)
	assert.True(t, update.EndDate.IsNull())
	got, ok := update.LastRun.Get()
	require.True(t, ok)
	assert.Equal(t, time.February, got.Month())
	assert.True(t, update.StartDate.IsUnset())
}

func TestHTTP_CreateRecurring(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	created := sampleRecurring(accountID)

	mockSvc := new(mockRecurringService)
	mockSvc.On("CreateRecurringTransaction", mock.Anything, mock.MatchedBy(func(c service.RecurringTransactionCreate) bool {
		return c.AccountID == accountID && c.Frequency == service.FrequencyMonthly
	})).Return(created, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/recurringTransaction", CreateRecurringBody{
		AccountID: accountID.String(),
		Amount:    "1200",
		Type:      "EXPENSE",
		StartDate: "2025-01-01T00:00:00Z",
		Frequency: "MONTHLY",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body RecurringTransaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MONTHLY", body.Frequency)
	assert.Nil(t, body.EndDate)
	assert.Nil(t, body.LastRun)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateRecurring_InvalidRange(t *testing.T) {
	mockSvc := new(mockRecurringService)
	mockSvc.On("CreateRecurringTransaction", mock.Anything, mock.Anything).
		Return(nil, apperr.Invalid("endDate", apperr.ErrInvalidDateRange))

	resp := newTestAPI(t, mockSvc).Post("/v1/recurringTransaction", CreateRecurringBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "10",
		Type:      "INCOME",
		StartDate: "2025-02-01T00:00:00Z",
		EndDate:   "2025-01-01T00:00:00Z",
		Frequency: "WEEKLY",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateRecurring_UnknownFrequency(t *testing.T) {
	mockSvc := new(mockRecurringService)

	resp := newTestAPI(t, mockSvc).Post("/v1/recurringTransaction", CreateRecurringBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "10",
		Type:      "INCOME",
		StartDate: "2025-02-01T00:00:00Z",
		Frequency: "HOURLY",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateRecurringTransaction", mock.Anything, mock.Anything)
}

func TestHTTP_ReadUpdateDeleteRecurring(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	rt := sampleRecurring(accountID)

	mockSvc := new(mockRecurringService)
	mockSvc.On("GetRecurringTransaction", mock.Anything, rt.ID).Return(rt, nil)
	mockSvc.On("ListRecurringTransactionsByAccount", mock.Anything, accountID).Return([]service.RecurringTransaction{*rt}, nil)
	mockSvc.On("UpdateRecurringTransaction", mock.Anything, rt.ID, mock.Anything).Return(rt, nil)
	mockSvc.On("DeleteRecurringTransaction", mock.Anything, rt.ID).Return(nil, apperr.NotFound("recurring transaction", rt.ID))
	api := newTestAPI(t, mockSvc)

	assert.Equal(t, http.StatusOK, api.Get("/v1/recurringTransaction/"+rt.ID.String()).Code)

	resp := api.Get("/v1/recurringTransaction/account/" + accountID.String())
	assert.Equal(t, http.StatusOK, resp.Code)
	var list struct {
		RecurringTransactions []RecurringTransaction `json:"recurringTransactions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list.RecurringTransactions, 1)

	assert.Equal(t, http.StatusOK, api.Put("/v1/recurringTransaction/"+rt.ID.String(), map[string]any{"amount": "99.99"}).Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/v1/recurringTransaction/"+rt.ID.String()).Code)
	mockSvc.AssertExpectations(t)
}
