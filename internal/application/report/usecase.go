// Package report contiene los casos de uso de reportes: stock, rentabilidad,
// rotación, reposición y resúmenes de proyecto. Todos son de solo lectura.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

const moneyPlaces = 2

// UseCase genera los reportes a partir de ReportRepository.
type UseCase struct {
	reportRepo   repository.ReportRepository
	projectRepo  repository.ProjectRepository
	customerRepo repository.CustomerRepository
	pdf          ProjectPDFGenerator
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exponen PDFs.
func NewUseCase(
	reportRepo repository.ReportRepository,
	projectRepo repository.ProjectRepository,
	customerRepo repository.CustomerRepository,
	pdf ProjectPDFGenerator,
) *UseCase {
	return &UseCase{
		reportRepo:   reportRepo,
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		pdf:          pdf,
	}
}

// StockSummary stock por artículo (solo artículos con saldo).
func (uc *UseCase) StockSummary(ctx context.Context) ([]dto.StockSummaryItem, error) {
	rows, err := uc.reportRepo.StockSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: stock summary: %w", err)
	}
	out := make([]dto.StockSummaryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockSummaryItem{
			ArticleCode:   r.ArticleCode,
			ArticleName:   r.ArticleName,
			Supplier:      r.Supplier,
			TotalQuantity: r.TotalQuantity,
			AveragePrice:  r.AveragePrice.Round(moneyPlaces),
			TotalValue:    r.TotalValue.Round(moneyPlaces),
			OldestDate:    r.OldestDate,
			NewestDate:    r.NewestDate,
		})
	}
	return out, nil
}

// StockDetail un renglón por lote con saldo.
func (uc *UseCase) StockDetail(ctx context.Context) ([]dto.StockDetailItem, error) {
	rows, err := uc.reportRepo.StockDetail(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: stock detail: %w", err)
	}
	out := make([]dto.StockDetailItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockDetailItem{
			LotID:       r.LotID,
			ArticleCode: r.ArticleCode,
			ArticleName: r.ArticleName,
			Supplier:    r.Supplier,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			ReceiptDate: r.ReceiptDate,
			Value:       r.Value.Round(moneyPlaces),
		})
	}
	return out, nil
}

// BelowMinimum artículos con stock por debajo del mínimo y cuánto pedir para alcanzarlo.
func (uc *UseCase) BelowMinimum(ctx context.Context) ([]dto.BelowMinimumItem, error) {
	rows, err := uc.reportRepo.BelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: below minimum: %w", err)
	}
	out := make([]dto.BelowMinimumItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BelowMinimumItem{
			ArticleCode:     r.ArticleCode,
			ArticleName:     r.ArticleName,
			MinimumStock:    r.MinimumStock,
			CurrentStock:    r.CurrentStock,
			Supplier:        r.Supplier,
			ReorderQuantity: inventory.ReorderQuantity(r.MinimumStock, r.CurrentStock),
		})
	}
	return out, nil
}

// ProfitAnalysis rentabilidad por artículo, opcionalmente de un solo proyecto.
//
// basis:
//   - "average" (defecto): costo = cantidad vendida × media simple de precios de compra
//   - "fifo": costo = suma de los lotes realmente consumidos
func (uc *UseCase) ProfitAnalysis(ctx context.Context, projectID *int64, basis string) (*dto.ProfitAnalysisResponse, error) {
	basis = strings.ToLower(strings.TrimSpace(basis))
	if basis == "" {
		basis = dto.CostBasisAverage
	}
	if basis != dto.CostBasisAverage && basis != dto.CostBasisFIFO {
		return nil, domain.Invalid("basis debe ser %q o %q", dto.CostBasisAverage, dto.CostBasisFIFO)
	}
	if projectID != nil {
		p, err := uc.projectRepo.GetByID(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NotFound("proyecto %d", *projectID)
		}
	}

	rows, err := uc.reportRepo.Profit(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("report: profit: %w", err)
	}

	resp := &dto.ProfitAnalysisResponse{
		ProjectID: projectID,
		CostBasis: basis,
		Items:     make([]dto.ProfitItem, 0, len(rows)),
	}
	totalRevenue, totalCost := decimal.Zero, decimal.Zero
	for _, r := range rows {
		cost := inventory.AverageCost(r.QuantitySold, r.MeanPurchasePrice)
		if basis == dto.CostBasisFIFO {
			cost = r.FIFOCost
		}
		profit := r.Revenue.Sub(cost)
		resp.Items = append(resp.Items, dto.ProfitItem{
			ArticleCode:          r.ArticleCode,
			ArticleName:          r.ArticleName,
			QuantitySold:         r.QuantitySold,
			AverageSalePrice:     r.AverageSalePrice.Round(moneyPlaces),
			AveragePurchasePrice: r.MeanPurchasePrice.Round(moneyPlaces),
			Revenue:              r.Revenue.Round(moneyPlaces),
			Cost:                 cost.Round(moneyPlaces),
			Profit:               profit.Round(moneyPlaces),
			MarginPercent:        inventory.MarginPercent(profit, r.Revenue).Round(moneyPlaces),
		})
		totalRevenue = totalRevenue.Add(r.Revenue)
		totalCost = totalCost.Add(cost)
	}
	totalProfit := totalRevenue.Sub(totalCost)
	resp.TotalRevenue = totalRevenue.Round(moneyPlaces)
	resp.TotalCost = totalCost.Round(moneyPlaces)
	resp.TotalProfit = totalProfit.Round(moneyPlaces)
	resp.TotalMarginPercent = inventory.MarginPercent(totalProfit, totalRevenue).Round(moneyPlaces)
	return resp, nil
}

// Turnover rotación por artículo: vendido / stock actual.
func (uc *UseCase) Turnover(ctx context.Context) ([]dto.TurnoverItem, error) {
	rows, err := uc.reportRepo.Turnover(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: turnover: %w", err)
	}
	out := make([]dto.TurnoverItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TurnoverItem{
			ArticleCode: r.ArticleCode,
			ArticleName: r.ArticleName,
			Stock:       r.Stock,
			Sold:        r.Sold,
			SaleCount:   r.SaleCount,
			Ratio:       inventory.TurnoverRatio(r.Sold, r.Stock).Round(moneyPlaces),
		})
	}
	return out, nil
}

// ProjectOverview ventas de un proyecto con su facturación.
// El proyecto y sus ventas se leen en paralelo.
func (uc *UseCase) ProjectOverview(ctx context.Context, projectID int64) (*dto.ProjectOverviewResponse, error) {
	type salesResult struct {
		rows []repository.ProjectSaleRow
		err  error
	}
	salesCh := make(chan salesResult, 1)
	go func() {
		rows, err := uc.reportRepo.ProjectSales(ctx, projectID)
		salesCh <- salesResult{rows, err}
	}()

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	sales := <-salesCh
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.NotFound("proyecto %d", projectID)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("report: project sales: %w", sales.err)
	}

	customerName := ""
	if c, err := uc.customerRepo.GetByID(ctx, project.CustomerID); err != nil {
		return nil, err
	} else if c != nil {
		customerName = c.Name
	}

	resp := &dto.ProjectOverviewResponse{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Customer:    customerName,
		Sales:       make([]dto.ProjectSaleItem, 0, len(sales.rows)),
	}
	total := decimal.Zero
	for _, r := range sales.rows {
		resp.Sales = append(resp.Sales, dto.ProjectSaleItem{
			SaleID:      r.SaleID,
			ArticleCode: r.ArticleCode,
			ArticleName: r.ArticleName,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			SaleDate:    r.SaleDate,
			Revenue:     r.Revenue.Round(moneyPlaces),
		})
		total = total.Add(r.Revenue)
	}
	resp.TotalRevenue = total.Round(moneyPlaces)
	return resp, nil
}

// ProjectsOverview todos los proyectos con número de ventas y facturación.
func (uc *UseCase) ProjectsOverview(ctx context.Context) ([]dto.ProjectSummaryItem, error) {
	rows, err := uc.reportRepo.ProjectsOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: projects overview: %w", err)
	}
	out := make([]dto.ProjectSummaryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProjectSummaryItem{
			ProjectID:    r.ProjectID,
			ProjectName:  r.ProjectName,
			Customer:     r.Customer,
			SaleCount:    r.SaleCount,
			TotalRevenue: r.Revenue.Round(moneyPlaces),
		})
	}
	return out, nil
}

// ProjectOverviewPDF resumen del proyecto como PDF y su nombre de archivo.
func (uc *UseCase) ProjectOverviewPDF(ctx context.Context, projectID int64) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("report: generador PDF no configurado")
	}
	overview, err := uc.ProjectOverview(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.ProjectOverview(overview)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return data, fmt.Sprintf("projekt-%d.pdf", projectID), nil
}
