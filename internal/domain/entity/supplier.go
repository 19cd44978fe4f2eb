package entity

import "time"

// Supplier proveedor de artículos. No se puede borrar mientras tenga artículos.
type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	CreatedAt time.Time
}
