package category

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	AccountID string `json:"accountId" doc:"Owning account UUID"`
	Name      string `json:"name" doc:"Category name"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(c *service.Category) Category {
	return Category{
		ID:        c.ID.String(),
		AccountID: c.AccountID.String(),
		Name:      c.Name,
		CreatedAt: apierr.FormatTime(c.CreatedAt),
	}
}

type CategoryIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

type CategoryOutput struct {
	Body Category
}
