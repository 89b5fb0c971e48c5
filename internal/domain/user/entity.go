package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		ID           ID
		UUID         UUID
		Email        string
		FullName     string
		PasswordHash *string
		Role         string

		CreatedAt time.Time
	}
	Users []*User
)

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
