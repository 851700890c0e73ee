package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type Category struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	CreatedAt time.Time
}

type CategoryCreate struct {
	AccountID uuid.UUID
	Name      string
}

type CategoryUpdate struct {
	Name omit.Val[string]
}

func categoryFromStorage(row *sqlconfig.Category) *Category {
	return &Category{
		ID:        row.ID,
		AccountID: row.AccountID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

// CategoryService handles category business logic. Name uniqueness within an
// account is controlled by Options.UniqueCategoryNames.
type CategoryService struct {
	storage     *storage.Storage
	uniqueNames bool
}

func NewCategoryService(store *storage.Storage, opts Options) *CategoryService {
	return &CategoryService{storage: store, uniqueNames: opts.UniqueCategoryNames}
}

func (s *CategoryService) CreateCategory(ctx context.Context, create CategoryCreate) (*Category, error) {
	name, err := requireName("name", create.Name)
	if err != nil {
		return nil, err
	}
	if _, err = s.storage.Accounts.FindByID(ctx, create.AccountID); err != nil {
		return nil, notFound(err, "account", create.AccountID)
	}
	if err = s.checkNameFree(ctx, create.AccountID, uuid.Nil, name); err != nil {
		return nil, err
	}

	row, err := s.storage.Categories.Insert(ctx, &sqlconfig.CategoryCreate{
		AccountID: create.AccountID,
		Name:      name,
	})
	if err != nil {
		return nil, missingParent(err, "account", create.AccountID)
	}
	return categoryFromStorage(row), nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	row, err := s.storage.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return categoryFromStorage(row), nil
}

// ListCategoriesByAccount returns every category of the account ordered by name.
func (s *CategoryService) ListCategoriesByAccount(ctx context.Context, accountID uuid.UUID) ([]Category, error) {
	if _, err := s.storage.Accounts.FindByID(ctx, accountID); err != nil {
		return nil, notFound(err, "account", accountID)
	}
	rows, err := s.storage.Categories.ListByParent(ctx, accountID, nil)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = *categoryFromStorage(row)
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, update CategoryUpdate) (*Category, error) {
	existing, err := s.storage.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category", id)
	}

	patch := &sqlconfig.CategoryPatch{}
	if v, ok := update.Name.Get(); ok {
		name, err := requireName("name", v)
		if err != nil {
			return nil, err
		}
		if err = s.checkNameFree(ctx, existing.AccountID, id, name); err != nil {
			return nil, err
		}
		patch.Name = omit.From(name)
	}

	row, err := s.storage.Categories.Update(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return categoryFromStorage(row), nil
}

// DeleteCategory removes the category and its budgets. Transactions that
// referenced it keep existing without a category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	if _, err := s.storage.Categories.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "category", id)
	}
	row, err := s.storage.Categories.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return categoryFromStorage(row), nil
}

func (s *CategoryService) checkNameFree(ctx context.Context, accountID, self uuid.UUID, name string) error {
	if !s.uniqueNames {
		return nil
	}
	categories, err := s.storage.Categories.ListByParent(ctx, accountID, nil)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID != self && c.Name == name {
			return apperr.Conflict("category", "name", apperr.ErrDuplicateName)
		}
	}
	return nil
}
