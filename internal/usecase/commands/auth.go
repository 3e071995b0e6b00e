package commands

import (
	"context"

	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/jwt"
	"roombook/internal/pkg/password"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errs.New("invalid credentials")

type LoginResult struct {
	Token  string
	UserID uuid.UUID
	Role   user.Role
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	userRepo UserRepository
	tokens   *jwt.Service
}

func NewAuthCommands(userRepo UserRepository, tokens *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	found, err := c.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !found.IsActive() {
		return nil, ErrInvalidCredentials
	}

	if err := password.ComparePassword(found.PasswordHash(), plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := c.tokens.GenerateToken(found.ID(), found.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign token")
	}

	return &LoginResult{
		Token:  token,
		UserID: found.ID(),
		Role:   found.Role(),
	}, nil
}
