package response

import (
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: result.Token,
		UserID:      result.UserID,
		Role:        result.Role.String(),
	}
}
