package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
	"github.com/jhoicas/lagerverwaltung-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthUseCase registro, login, refresh y logout con JWT + blacklist de jti.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	blacklist repository.TokenBlacklist
	jwtCfg    JWTConfig
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, blacklist repository.TokenBlacklist, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.AccessTTL <= 0 {
		jwtCfg.AccessTTL = time.Hour
	}
	if jwtCfg.RefreshTTL <= 0 {
		jwtCfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthUseCase{userRepo: userRepo, blacklist: blacklist, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario activo con password bcrypt. Username duplicado -> ErrDuplicate.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := normalizeUsername(in.Username)
	if username == "" {
		return nil, domain.Invalid("username es requerido")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Invalid("el password debe tener al menos %d caracteres", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password y emite access + refresh token.
// Usuario inexistente, password incorrecto o usuario inactivo -> ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, normalizeUsername(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrUnauthorized)
	}

	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.TypeAccess, user.ID, user.Username, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.TypeRefresh, user.ID, user.Username, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		TokenType:    "Bearer",
		ExpiresIn:    int(uc.jwtCfg.AccessTTL.Seconds()),
		User:         *toUserResponse(user),
	}, nil
}

// Refresh emite un access token nuevo a partir de un refresh token válido y no revocado.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := uc.verify(ctx, refreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, fmt.Errorf("%w: usuario no disponible", domain.ErrUnauthorized)
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.TypeAccess, user.ID, user.Username, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: access.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(uc.jwtCfg.AccessTTL.Seconds()),
		User:        *toUserResponse(user),
	}, nil
}

// VerifyAccess valida un access token y comprueba que su jti no esté revocado.
func (uc *AuthUseCase) VerifyAccess(ctx context.Context, token string) (*jwt.Claims, error) {
	return uc.verify(ctx, token, jwt.TypeAccess)
}

// Logout revoca el jti hasta la expiración del token.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return fmt.Errorf("%w: token sin jti", domain.ErrUnauthorized)
	}
	return uc.blacklist.Revoke(ctx, claims.ID, claims.Expiry())
}

// Me devuelve el usuario del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ListUsers todos los usuarios por username.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func (uc *AuthUseCase) verify(ctx context.Context, token, tokenType string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, tokenType)
	if err != nil {
		if errors.Is(err, jwt.ErrWrongType) {
			return nil, fmt.Errorf("%w: se esperaba un token %s", domain.ErrUnauthorized, tokenType)
		}
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
	revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: consultar blacklist: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
