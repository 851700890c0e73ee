package account

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	UserID    string `json:"userId" doc:"Owning user UUID"`
	Name      string `json:"name" doc:"Account name"`
	Balance   string `json:"balance" doc:"Decimal running balance"`
	CreatedAt string `json:"createdAt" format:"date-time" doc:"Creation time (RFC3339)"`
}

func fromService(a *service.Account) Account {
	return Account{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Name:      a.Name,
		Balance:   a.Balance.String(),
		CreatedAt: apierr.FormatTime(a.CreatedAt),
	}
}

// AccountIDInput identifies one account by path.
type AccountIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

// AccountOutput wraps a single account.
type AccountOutput struct {
	Body Account
}
