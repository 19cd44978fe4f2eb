package entity

import "time"

// Project proyecto de venta de un cliente; todas las ventas se imputan a un proyecto.
type Project struct {
	ID         int64
	Name       string
	CustomerID int64
	CreatedAt  time.Time
}
