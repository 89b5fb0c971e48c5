package auth

import (
	"safechain-api/internal/interface/api/rest/dto/user"
)

type (
	Response struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		User        user.User `json:"user"`
	}
)
