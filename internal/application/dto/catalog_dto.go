package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"max=200"`
}

// UpdateSupplierRequest campos opcionales; nil = sin cambio.
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,max=200"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateArticleRequest entrada para crear un artículo. MinimumStock nil = 1.
type CreateArticleRequest struct {
	Code         string `json:"code" validate:"required,max=64"`
	Name         string `json:"name" validate:"required,max=200"`
	SupplierID   int64  `json:"supplier_id" validate:"required,gt=0"`
	MinimumStock *int   `json:"minimum_stock,omitempty" validate:"omitempty,gte=0,max=2147483647"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	SupplierID   int64     `json:"supplier_id"`
	MinimumStock int       `json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"max=200"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProjectRequest entrada para crear un proyecto de un cliente existente.
type CreateProjectRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CustomerID int64     `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}
