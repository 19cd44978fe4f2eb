package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("violación de integridad referencial")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrTokenRevoked      = errors.New("token revocado")
)

// Invalid envuelve ErrInvalidInput con el detalle para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound con el recurso afectado.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InsufficientStock describe cuánto se pidió y cuánto hay.
func InsufficientStock(articleCode string, requested, available int) error {
	return fmt.Errorf("%w: artículo %s, solicitado %d, disponible %d",
		ErrInsufficientStock, articleCode, requested, available)
}

// IsExpected indica si el error es un resultado de negocio recuperable (no un fallo de almacenamiento).
func IsExpected(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrConflict,
		ErrInsufficientStock, ErrUnauthorized, ErrUserNotFound, ErrTokenRevoked,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
