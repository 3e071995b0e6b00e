package repository

import (
	"context"
	"time"

	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) commands.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `
		SELECT id, email, password_hash, role, is_active, created_at
		FROM users WHERE email = $1`

	var (
		id           uuid.UUID
		address      string
		passwordHash string
		role         string
		active       bool
		createdAt    time.Time
	)
	err := r.db.QueryRow(ctx, query, email).Scan(&id, &address, &passwordHash, &role, &active, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	parsedEmail, err := user.NewEmail(address)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is malformed", err)
	}

	return user.ReconstructUser(id, parsedEmail, passwordHash, user.Role(role), active, createdAt), nil
}
