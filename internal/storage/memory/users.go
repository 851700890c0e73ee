package memory

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type usersTable struct {
	s *session
}

var _ sqlconfig.IUserTable = (*usersTable)(nil)

func (t *usersTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.User, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.users, id)
		return err
	})
	return out, err
}

func (t *usersTable) FindByEmail(ctx context.Context, email string) (out *sqlconfig.User, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		for _, u := range d.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return sqlconfig.ErrRecordNotFound
	})
	return out, err
}

func (t *usersTable) List(ctx context.Context, filter *sqlconfig.ListFilter) (out []*sqlconfig.User, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.users, nil, compareUsers, filter)
		return nil
	})
	return out, err
}

func (t *usersTable) Insert(ctx context.Context, create *sqlconfig.UserCreate) (out *sqlconfig.User, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if emailTaken(d, uuid.Nil, create.Email) {
			return uniqueViolation("users_email_key")
		}
		u := sqlconfig.User{
			ID:           newID(),
			Name:         create.Name,
			Email:        create.Email,
			PasswordHash: create.PasswordHash,
			CreatedAt:    now(),
		}
		d.users[u.ID] = u
		out = &u
		return nil
	})
	return out, err
}

func (t *usersTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.UserPatch) (out *sqlconfig.User, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if v, ok := patch.Name.Get(); ok {
			u.Name = v
		}
		if v, ok := patch.Email.Get(); ok {
			if emailTaken(d, id, v) {
				return uniqueViolation("users_email_key")
			}
			u.Email = v
		}
		if v, ok := patch.PasswordHash.Get(); ok {
			u.PasswordHash = v
		}
		d.users[id] = u
		out = &u
		return nil
	})
	return out, err
}

func (t *usersTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.User, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.users, id)
		if err != nil {
			return err
		}
		d.deleteUser(id)
		return nil
	})
	return out, err
}

func emailTaken(d *dataset, self uuid.UUID, email string) bool {
	for id, u := range d.users {
		if id != self && u.Email == email {
			return true
		}
	}
	return false
}

func compareUsers(a, b *sqlconfig.User) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}
