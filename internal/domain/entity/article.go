package entity

import "time"

// DefaultMinimumStock cantidad mínima por defecto de un artículo nuevo.
const DefaultMinimumStock = 1

// Article artículo del catálogo, identificado por un código asignado externamente.
// MinimumStock es el umbral para el informe de reposición.
type Article struct {
	Code         string
	Name         string
	SupplierID   int64
	MinimumStock int
	CreatedAt    time.Time
}
