package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

// User represents a users record.
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Name         string
	Email        string
	PasswordHash string
}

// UserPatch lists the user columns that may change. Unset fields are left alone.
type UserPatch struct {
	Name         omit.Val[string]
	Email        omit.Val[string]
	PasswordHash omit.Val[string]
}

// IUserTable defines the interface for user storage operations.
//
//go:generate mockery --name IUserTable --output mock_IUserTable.go
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter *ListFilter) ([]*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	Update(ctx context.Context, id uuid.UUID, patch *UserPatch) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) (*User, error)
}

var usersTable = table{
	name:    "users",
	columns: []string{"id", "name", "email", "password_hash", "created_at"},
}

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

var _ IUserTable = (*UsersTable)(nil)

// NewUsersTable creates a UsersTable on the given executor.
func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return findByID[User](ctx, t.exec, usersTable, id, false)
}

func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(usersTable.selectMods(sm.Where(whereColumn("email", email)))...)
	return queryOne[User](ctx, t.exec, q)
}

// List returns users ordered by name. Nil filter returns all.
func (t *UsersTable) List(ctx context.Context, filter *ListFilter) ([]*User, error) {
	mods := usersTable.selectMods(
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[User](ctx, t.exec, psql.Select(mods...))
}

func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	q := psql.Insert(
		im.Into(usersTable.name, "name", "email", "password_hash"),
		im.Values(psql.Arg(create.Name, create.Email, create.PasswordHash)),
		im.Returning(usersTable.cols()...),
	)
	return queryOne[User](ctx, t.exec, q)
}

func (t *UsersTable) Update(ctx context.Context, id uuid.UUID, patch *UserPatch) (*User, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if v, ok := patch.Name.Get(); ok {
		sets = append(sets, setCol("name", v))
	}
	if v, ok := patch.Email.Get(); ok {
		sets = append(sets, setCol("email", v))
	}
	if v, ok := patch.PasswordHash.Get(); ok {
		sets = append(sets, setCol("password_hash", v))
	}
	return updateByID[User](ctx, t.exec, usersTable, id, sets)
}

func (t *UsersTable) Delete(ctx context.Context, id uuid.UUID) (*User, error) {
	return deleteByID[User](ctx, t.exec, usersTable, id)
}
