//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/pkg/jwt"
	"roombook/internal/pkg/password"
	"roombook/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func seedUser(t *testing.T, address, plain string, role user.Role, active bool) *user.User {
	t.Helper()
	email, err := user.NewEmail(address)
	require.NoError(t, err)
	hash, err := password.HashPassword(plain)
	require.NoError(t, err)
	u, err := user.NewUser(email, hash, role)
	require.NoError(t, err)
	if !active {
		u = user.ReconstructUser(u.ID(), u.Email(), u.PasswordHash(), u.Role(), false, u.CreatedAt())
	}
	return u
}

func TestLogin(t *testing.T) {
	tokens := jwt.NewService("test-secret", time.Hour)

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		u := seedUser(t, "logistics@example.com", "s3cret-pass", user.RoleLogistics, true)
		cmd := commands.NewAuthCommands(&fakeUserRepo{byEmail: map[string]*user.User{"logistics@example.com": u}}, tokens)

		result, err := cmd.Login(context.Background(), "logistics@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, u.ID(), result.UserID)
		assert.Equal(t, user.RoleLogistics, result.Role)

		claims, err := tokens.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID(), claims.UserID)
		assert.Equal(t, user.RoleLogistics.String(), claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		u := seedUser(t, "someone@example.com", "right-pass", user.RoleUser, true)
		cmd := commands.NewAuthCommands(&fakeUserRepo{byEmail: map[string]*user.User{"someone@example.com": u}}, tokens)

		_, err := cmd.Login(context.Background(), "someone@example.com", "wrong-pass")

		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a bad password", func(t *testing.T) {
		cmd := commands.NewAuthCommands(&fakeUserRepo{byEmail: map[string]*user.User{}}, tokens)

		_, err := cmd.Login(context.Background(), "ghost@example.com", "whatever")

		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		u := seedUser(t, "gone@example.com", "s3cret-pass", user.RoleUser, false)
		cmd := commands.NewAuthCommands(&fakeUserRepo{byEmail: map[string]*user.User{"gone@example.com": u}}, tokens)

		_, err := cmd.Login(context.Background(), "gone@example.com", "s3cret-pass")

		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})
}
