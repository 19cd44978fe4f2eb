package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token emitidos.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongType el token es válido pero no del tipo esperado (p. ej. refresh usado como access).
var ErrWrongType = errors.New("jwt: tipo de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El ID (jti) identifica el token para la blacklist de logout.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
}

// Issued token firmado y sus metadatos.
type Issued struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// Generate firma un token HS256 del tipo indicado con un jti aleatorio.
func Generate(secret, issuer, tokenType string, userID int64, username string, ttl time.Duration) (*Issued, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:   userID,
		Username: username,
		Type:     tokenType,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("jwt: firmar: %w", err)
	}
	return &Issued{Token: signed, ID: claims.ID, ExpiresAt: exp}, nil
}

// Parse valida firma, expiración y tipo. expectedType vacío acepta cualquier tipo.
func Parse(secret, tokenString, expectedType string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if expectedType != "" && claims.Type != expectedType {
		return nil, ErrWrongType
	}
	return claims, nil
}

// Expiry devuelve la expiración del token o el instante actual si no la tiene.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Now()
	}
	return c.ExpiresAt.Time
}
