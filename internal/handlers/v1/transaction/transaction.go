package transaction

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	AccountID   string  `json:"accountId" doc:"Account UUID"`
	CategoryID  *string `json:"categoryId,omitempty" doc:"Category UUID, absent when uncategorised"`
	Amount      string  `json:"amount" doc:"Positive decimal amount"`
	Type        string  `json:"type" enum:"INCOME,EXPENSE" doc:"Direction of the transaction"`
	Description *string `json:"description,omitempty" doc:"Free text"`
	Date        string  `json:"date" doc:"RFC3339 transaction date"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx *service.Transaction) Transaction {
	out := Transaction{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Amount:      tx.Amount.String(),
		Type:        string(tx.Type),
		Description: tx.Description,
		Date:        apierr.FormatTime(tx.Date),
		CreatedAt:   apierr.FormatTime(tx.CreatedAt),
	}
	if tx.CategoryID != nil {
		id := tx.CategoryID.String()
		out.CategoryID = &id
	}
	return out
}

// TransactionIDInput identifies one transaction by path.
type TransactionIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// TransactionOutput wraps a single transaction.
type TransactionOutput struct {
	Body Transaction
}
