package memory

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type categoriesTable struct {
	s *session
}

var _ sqlconfig.ICategoryTable = (*categoriesTable)(nil)

func (t *categoriesTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.Category, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.categories, id)
		return err
	})
	return out, err
}

func (t *categoriesTable) ListByParent(ctx context.Context, accountID uuid.UUID, filter *sqlconfig.ListFilter) (out []*sqlconfig.Category, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.categories, func(c *sqlconfig.Category) bool {
			return c.AccountID == accountID
		}, func(a, b *sqlconfig.Category) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return compareIDs(a.ID, b.ID)
		}, filter)
		return nil
	})
	return out, err
}

func (t *categoriesTable) Insert(ctx context.Context, create *sqlconfig.CategoryCreate) (out *sqlconfig.Category, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if err := d.requireAccount(create.AccountID, "categories.account_id"); err != nil {
			return err
		}
		c := sqlconfig.Category{
			ID:        newID(),
			AccountID: create.AccountID,
			Name:      create.Name,
			CreatedAt: now(),
		}
		d.categories[c.ID] = c
		out = &c
		return nil
	})
	return out, err
}

func (t *categoriesTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.CategoryPatch) (out *sqlconfig.Category, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		c, ok := d.categories[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if v, ok := patch.Name.Get(); ok {
			c.Name = v
		}
		d.categories[id] = c
		out = &c
		return nil
	})
	return out, err
}

func (t *categoriesTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.Category, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.categories, id)
		if err != nil {
			return err
		}
		d.deleteCategory(id)
		return nil
	})
	return out, err
}
