package inventory

import (
	"context"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// ReceiveFromRequest adapta el request HTTP a Receive.
func (uc *LedgerUseCase) ReceiveFromRequest(ctx context.Context, in dto.ReceiptRequest) (*dto.LotResponse, error) {
	lot, err := uc.Receive(ctx, ReceiveInput{
		ArticleCode: in.ArticleCode,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		ReceiptDate: in.ReceiptDate,
	})
	if err != nil {
		return nil, err
	}
	resp := ToLotResponse(*lot)
	return &resp, nil
}

// SellFromRequest adapta el request HTTP a Sell.
func (uc *LedgerUseCase) SellFromRequest(ctx context.Context, in dto.SaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.Sell(ctx, SellInput{
		ProjectID:   in.ProjectID,
		ArticleCode: in.ArticleCode,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		SaleDate:    in.SaleDate,
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// LotsForArticle lotes de un artículo como DTO.
func (uc *LedgerUseCase) LotsForArticle(ctx context.Context, articleCode string, includeZero bool) ([]dto.LotResponse, error) {
	lots, err := uc.Lots(ctx, articleCode, includeZero)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, ToLotResponse(l))
	}
	return out, nil
}

// ToLotResponse convierte un lote a su DTO.
func ToLotResponse(l entity.StockLot) dto.LotResponse {
	return dto.LotResponse{
		ID:                l.ID,
		ArticleCode:       l.ArticleCode,
		ReceivedQuantity:  l.ReceivedQty,
		AvailableQuantity: l.AvailableQty,
		UnitPrice:         l.UnitPrice,
		ReceiptDate:       l.ReceiptDate,
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	allocs := make([]dto.AllocationResponse, 0, len(s.Allocations))
	for _, a := range s.Allocations {
		allocs = append(allocs, dto.AllocationResponse{LotID: a.LotID, Quantity: a.Quantity, UnitCost: a.UnitCost})
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		ArticleCode: s.ArticleCode,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		SaleDate:    s.SaleDate,
		Revenue:     s.Revenue(),
		Allocations: allocs,
	}
}
