package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

const (
	minUserNameLength = 3
	maxUserNameLength = 255
	minPasswordLength = 8
	maxPasswordLength = 32
	// bcrypt refuses longer inputs.
	maxPasswordBytes = 72
)

// User represents a user in the service layer. The password hash never leaves storage.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

type UserCreate struct {
	Name     string
	Email    string
	Password string
}

type UserUpdate struct {
	Name     omit.Val[string]
	Email    omit.Val[string]
	Password omit.Val[string]
}

func userFromStorage(row *sqlconfig.User) *User {
	return &User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}
}

// UserService handles user business logic.
type UserService struct {
	storage    *storage.Storage
	bcryptCost int
}

func NewUserService(store *storage.Storage, opts Options) *UserService {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{storage: store, bcryptCost: cost}
}

// CreateUser registers a user. Email is unique across the system.
func (s *UserService) CreateUser(ctx context.Context, create UserCreate) (*User, error) {
	name, err := validateUserName(create.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(create.Email)
	if err != nil {
		return nil, err
	}
	if err = validatePassword(create.Password); err != nil {
		return nil, err
	}

	if err = s.checkEmailFree(ctx, uuid.Nil, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(create.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	row, err := s.storage.Users.Insert(ctx, &sqlconfig.UserCreate{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, conflict(err, "user", "email", apperr.ErrDuplicateEmail)
	}
	return userFromStorage(row), nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.storage.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return userFromStorage(row), nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	row, err := s.storage.Users.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, notFound(err, "user", normalized)
	}
	return userFromStorage(row), nil
}

// ListUsers returns a page of users ordered by name.
func (s *UserService) ListUsers(ctx context.Context, cursor *Cursor) ([]User, *Cursor, error) {
	limit, offset := cursorWindow(cursor)

	rows, err := s.storage.Users.List(ctx, &sqlconfig.ListFilter{Limit: limit + 1, Offset: offset})
	if err != nil {
		return nil, nil, err
	}

	rows, more := trimPage(rows, limit)
	var nextCursor *Cursor
	if more {
		nextCursor = &Cursor{Position: offset + limit, Limit: limit}
	}

	users := make([]User, len(rows))
	for i, row := range rows {
		users[i] = *userFromStorage(row)
	}
	return users, nextCursor, nil
}

// UpdateUser applies the set fields. A new email must not belong to another user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*User, error) {
	if _, err := s.storage.Users.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "user", id)
	}

	patch := &sqlconfig.UserPatch{}
	if v, ok := update.Name.Get(); ok {
		name, err := validateUserName(v)
		if err != nil {
			return nil, err
		}
		patch.Name = omit.From(name)
	}
	if v, ok := update.Email.Get(); ok {
		email, err := normalizeEmail(v)
		if err != nil {
			return nil, err
		}
		if err = s.checkEmailFree(ctx, id, email); err != nil {
			return nil, err
		}
		patch.Email = omit.From(email)
	}
	if v, ok := update.Password.Get(); ok {
		if err := validatePassword(v); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(v), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = omit.From(string(hash))
	}

	row, err := s.storage.Users.Update(ctx, id, patch)
	if err != nil {
		return nil, conflict(notFound(err, "user", id), "user", "email", apperr.ErrDuplicateEmail)
	}
	return userFromStorage(row), nil
}

// DeleteUser removes the user. Owned rows are removed by the storage cascade.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (*User, error) {
	if _, err := s.storage.Users.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "user", id)
	}
	row, err := s.storage.Users.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return userFromStorage(row), nil
}

func (s *UserService) checkEmailFree(ctx context.Context, self uuid.UUID, email string) error {
	existing, err := s.storage.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sqlconfig.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return apperr.Conflict("user", "email", apperr.ErrDuplicateEmail)
	}
	return nil
}

func validateUserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < minUserNameLength || n > maxUserNameLength {
		return "", apperr.Invalid("name", apperr.ErrInvalidName)
	}
	return name, nil
}

// normalizeEmail trims and lower-cases email and rejects anything that is not a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperr.Invalid("email", apperr.ErrInvalidEmail)
	}
	return email, nil
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength || len(password) > maxPasswordBytes {
		return apperr.Invalid("password", apperr.ErrInvalidPassword)
	}
	return nil
}
