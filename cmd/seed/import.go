package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

type importSummary struct {
	SuppliersCreated int
	ArticlesCreated  int
	ArticlesSkipped  int
}

// importCatalog crea los proveedores que falten (por nombre, sin distinguir mayúsculas)
// y los artículos. Un código ya existente se omite para poder repetir la importación.
func importCatalog(
	ctx context.Context,
	rows []articleRow,
	suppliers *usecase.SupplierUseCase,
	articles *usecase.ArticleUseCase,
	log *logger.Logger,
) (importSummary, error) {
	var sum importSummary

	existing, err := suppliers.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("listar proveedores: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, s := range existing {
		byName[strings.ToLower(s.Name)] = s.ID
	}

	for _, row := range rows {
		key := strings.ToLower(row.Supplier)
		supplierID, ok := byName[key]
		if !ok {
			created, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: row.Supplier, Contact: row.SupplierContact})
			if err != nil {
				return sum, fmt.Errorf("línea %d: crear proveedor %q: %w", row.Line, row.Supplier, err)
			}
			supplierID = created.ID
			byName[key] = supplierID
			sum.SuppliersCreated++
		}

		_, err := articles.Create(ctx, dto.CreateArticleRequest{
			Code:         row.Code,
			Name:         row.Name,
			SupplierID:   supplierID,
			MinimumStock: row.MinimumStock,
		})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			sum.ArticlesSkipped++
			log.Warn().Int("line", row.Line).Str("code", row.Code).Msg("artículo ya existe, se omite")
		case err != nil:
			return sum, fmt.Errorf("línea %d: crear artículo %q: %w", row.Line, row.Code, err)
		default:
			sum.ArticlesCreated++
		}
	}
	return sum, nil
}
