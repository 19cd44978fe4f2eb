package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	// Create devuelve domain.ErrDuplicate si el username ya existe.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

// TokenBlacklist jti revocados por logout. Las entradas pueden expirar con el token.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
