package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// IAction is a unit of work run inside one storage transaction. Returning
// an error rolls the transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// notFound turns a missing row into a NotFoundError for entity.
func notFound(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, sqlconfig.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

// lockAccount takes the row lock that serialises balance changes on one account.
func lockAccount(ctx context.Context, writer *storage.Writer, id uuid.UUID) (*sqlconfig.Account, error) {
	account, err := writer.Accounts.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, "account", id)
	}
	return account, nil
}

// checkCategory verifies the category exists and belongs to accountID.
func checkCategory(ctx context.Context, writer *storage.Writer, accountID, categoryID uuid.UUID) error {
	category, err := writer.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return notFound(err, "category", categoryID)
	}
	if category.AccountID != accountID {
		return apperr.Invalid("categoryId", apperr.ErrInvalidReference)
	}
	return nil
}
