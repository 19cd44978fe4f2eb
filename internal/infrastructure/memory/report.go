package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de solo lectura; mismas reglas que las consultas SQL.
type ReportRepo struct{ s *Store }

func (r *ReportRepo) StockSummary(_ context.Context) ([]repository.StockSummaryRow, error) {
	var out []repository.StockSummaryRow
	err := r.s.view(false, func(st *state) error {
		byArticle := map[string][]entity.StockLot{}
		for _, l := range st.lots {
			if l.AvailableQty > 0 {
				byArticle[l.ArticleCode] = append(byArticle[l.ArticleCode], l)
			}
		}
		for code, lots := range byArticle {
			a := st.articles[code]
			row := repository.StockSummaryRow{
				ArticleCode: code,
				ArticleName: a.Name,
				Supplier:    st.suppliers[a.SupplierID].Name,
				TotalValue:  decimal.Zero,
				OldestDate:  lots[0].ReceiptDate,
				NewestDate:  lots[0].ReceiptDate,
			}
			prices := make([]decimal.Decimal, 0, len(lots))
			for _, l := range lots {
				row.TotalQuantity += l.AvailableQty
				row.TotalValue = row.TotalValue.Add(l.Value())
				prices = append(prices, l.UnitPrice)
				if l.ReceiptDate < row.OldestDate {
					row.OldestDate = l.ReceiptDate
				}
				if l.ReceiptDate > row.NewestDate {
					row.NewestDate = l.ReceiptDate
				}
			}
			row.AveragePrice = inventory.MeanPrice(prices)
			out = append(out, row)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ArticleCode < out[j].ArticleCode })
	return out, err
}

func (r *ReportRepo) StockDetail(_ context.Context) ([]repository.StockDetailRow, error) {
	var lots []entity.StockLot
	var out []repository.StockDetailRow
	err := r.s.view(false, func(st *state) error {
		for _, l := range st.lots {
			if l.AvailableQty > 0 {
				lots = append(lots, l)
			}
		}
		inventory.SortLots(lots)
		sort.SliceStable(lots, func(i, j int) bool { return lots[i].ArticleCode < lots[j].ArticleCode })
		for _, l := range lots {
			a := st.articles[l.ArticleCode]
			out = append(out, repository.StockDetailRow{
				LotID:       l.ID,
				ArticleCode: l.ArticleCode,
				ArticleName: a.Name,
				Supplier:    st.suppliers[a.SupplierID].Name,
				Quantity:    l.AvailableQty,
				UnitPrice:   l.UnitPrice,
				ReceiptDate: l.ReceiptDate,
				Value:       l.Value(),
			})
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) BelowMinimum(_ context.Context) ([]repository.BelowMinimumRow, error) {
	var out []repository.BelowMinimumRow
	err := r.s.view(false, func(st *state) error {
		stock := stockByArticle(st)
		for code, a := range st.articles {
			if !inventory.BelowMinimum(stock[code], a.MinimumStock) {
				continue
			}
			out = append(out, repository.BelowMinimumRow{
				ArticleCode:  code,
				ArticleName:  a.Name,
				MinimumStock: a.MinimumStock,
				CurrentStock: stock[code],
				Supplier:     st.suppliers[a.SupplierID].Name,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ArticleCode < out[j].ArticleCode })
	return out, err
}

func (r *ReportRepo) Profit(_ context.Context, projectID *int64) ([]repository.ProfitRow, error) {
	var out []repository.ProfitRow
	err := r.s.view(false, func(st *state) error {
		type agg struct {
			row        repository.ProfitRow
			salePrices []decimal.Decimal
			allocs     []entity.SaleAllocation
		}
		byArticle := map[string]*agg{}
		for _, s := range st.sales {
			if projectID != nil && s.ProjectID != *projectID {
				continue
			}
			g, ok := byArticle[s.ArticleCode]
			if !ok {
				g = &agg{row: repository.ProfitRow{
					ArticleCode: s.ArticleCode,
					ArticleName: st.articles[s.ArticleCode].Name,
					Revenue:     decimal.Zero,
				}}
				byArticle[s.ArticleCode] = g
			}
			g.row.QuantitySold += s.Quantity
			g.row.Revenue = g.row.Revenue.Add(s.Revenue())
			g.salePrices = append(g.salePrices, s.UnitPrice)
			g.allocs = append(g.allocs, s.Allocations...)
		}
		for code, g := range byArticle {
			var purchase []decimal.Decimal
			for _, l := range st.lots {
				if l.ArticleCode == code {
					purchase = append(purchase, l.UnitPrice)
				}
			}
			g.row.AverageSalePrice = inventory.MeanPrice(g.salePrices)
			g.row.MeanPurchasePrice = inventory.MeanPrice(purchase)
			g.row.FIFOCost = inventory.FIFOCost(g.allocs)
			out = append(out, g.row)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ArticleCode < out[j].ArticleCode
	})
	return out, err
}

func (r *ReportRepo) Turnover(_ context.Context) ([]repository.TurnoverRow, error) {
	var out []repository.TurnoverRow
	err := r.s.view(false, func(st *state) error {
		stock := stockByArticle(st)
		sold := map[string]int{}
		count := map[string]int{}
		for _, s := range st.sales {
			sold[s.ArticleCode] += s.Quantity
			count[s.ArticleCode]++
		}
		for code, a := range st.articles {
			out = append(out, repository.TurnoverRow{
				ArticleCode: code,
				ArticleName: a.Name,
				Stock:       stock[code],
				Sold:        sold[code],
				SaleCount:   count[code],
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sold != out[j].Sold {
			return out[i].Sold > out[j].Sold
		}
		return out[i].ArticleCode < out[j].ArticleCode
	})
	return out, err
}

func (r *ReportRepo) ProjectSales(_ context.Context, projectID int64) ([]repository.ProjectSaleRow, error) {
	var out []repository.ProjectSaleRow
	err := r.s.view(false, func(st *state) error {
		for _, s := range st.sales {
			if s.ProjectID != projectID {
				continue
			}
			out = append(out, repository.ProjectSaleRow{
				SaleID:      s.ID,
				ArticleCode: s.ArticleCode,
				ArticleName: st.articles[s.ArticleCode].Name,
				Quantity:    s.Quantity,
				UnitPrice:   s.UnitPrice,
				SaleDate:    s.SaleDate,
				Revenue:     s.Revenue(),
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SaleDate != out[j].SaleDate {
			return out[i].SaleDate < out[j].SaleDate
		}
		if out[i].ArticleCode != out[j].ArticleCode {
			return out[i].ArticleCode < out[j].ArticleCode
		}
		return out[i].SaleID < out[j].SaleID
	})
	return out, err
}

func (r *ReportRepo) ProjectsOverview(_ context.Context) ([]repository.ProjectSummaryRow, error) {
	var out []repository.ProjectSummaryRow
	err := r.s.view(false, func(st *state) error {
		for id, p := range st.projects {
			row := repository.ProjectSummaryRow{
				ProjectID:   id,
				ProjectName: p.Name,
				Customer:    st.customers[p.CustomerID].Name,
				Revenue:     decimal.Zero,
			}
			for _, s := range st.sales {
				if s.ProjectID == id {
					row.SaleCount++
					row.Revenue = row.Revenue.Add(s.Revenue())
				}
			}
			out = append(out, row)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectName < out[j].ProjectName })
	return out, err
}

func stockByArticle(st *state) map[string]int {
	stock := map[string]int{}
	for _, l := range st.lots {
		if l.AvailableQty > 0 {
			stock[l.ArticleCode] += l.AvailableQty
		}
	}
	return stock
}
