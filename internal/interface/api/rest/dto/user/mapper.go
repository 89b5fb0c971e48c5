package user

import (
	"safechain-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:      uDomain.UUID,
		Email:     uDomain.Email,
		FullName:  uDomain.FullName,
		Role:      uDomain.Role,
		CreatedAt: uDomain.CreatedAt,
	}

	return u
}

func ToResponseUsers(uDomain user.Users) Users {
	us := make(Users, len(uDomain))
	for idx, u := range uDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}
