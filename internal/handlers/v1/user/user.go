package user

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

const basePath = "/v1/users"

// User is the API response model for a user. The password hash is never exposed.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Name      string `json:"name" doc:"Display name"`
	Email     string `json:"email" doc:"Unique email address"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(u *service.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: apierr.FormatTime(u.CreatedAt),
	}
}

type UserIDInput struct {
	ID string `path:"id" format:"uuid" doc:"User UUID"`
}

type UserOutput struct {
	Body User
}
