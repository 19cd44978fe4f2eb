package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

// LedgerUseCase recepciones y ventas FIFO sobre los lotes de stock.
//
// Cada operación sobre un artículo toma el lock del artículo y corre en una transacción;
// la venta además bloquea los lotes (SELECT ... FOR UPDATE en PostgreSQL), de modo que
// la suma vendida nunca supera la suma recibida aunque haya varias instancias.
type LedgerUseCase struct {
	txRunner    TxRunner
	articleRepo repository.ArticleRepository
	projectRepo repository.ProjectRepository
	lotRepo     repository.LotRepository
	locks       *articleLocks
	observer    Observer
	log         *logger.Logger
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso. observer y log pueden ser nil;
// el llamador fija el component del log.
func NewLedgerUseCase(
	txRunner TxRunner,
	articleRepo repository.ArticleRepository,
	projectRepo repository.ProjectRepository,
	lotRepo repository.LotRepository,
	observer Observer,
	log *logger.Logger,
) *LedgerUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		articleRepo: articleRepo,
		projectRepo: projectRepo,
		lotRepo:     lotRepo,
		locks:       newArticleLocks(),
		observer:    observer,
		log:         log,
		now:         time.Now,
	}
}

// ReceiveInput datos de una recepción. ReceiptDate vacío = hoy.
type ReceiveInput struct {
	ArticleCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	ReceiptDate string
}

// SellInput datos de una venta. SaleDate vacío = hoy.
type SellInput struct {
	ProjectID   int64
	ArticleCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	SaleDate    string
}

// Receive registra una recepción como un lote nuevo (nunca se fusiona con lotes existentes).
func (uc *LedgerUseCase) Receive(ctx context.Context, in ReceiveInput) (*entity.StockLot, error) {
	in.ArticleCode = strings.TrimSpace(in.ArticleCode)
	if in.ArticleCode == "" {
		return nil, domain.Invalid("article_code es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad recibida debe ser mayor que 0")
	}
	if !entity.QuantityFits(in.Quantity) {
		return nil, domain.Invalid("la cantidad recibida no puede superar %d", entity.MaxQuantity)
	}
	if !in.UnitPrice.IsPositive() {
		return nil, domain.Invalid("el precio de compra debe ser mayor que 0")
	}
	if !entity.PriceFits(in.UnitPrice) {
		return nil, domain.Invalid("el precio de compra admite como mucho %d decimales y 12 dígitos enteros", entity.PriceScale)
	}
	date, err := uc.resolveDate(in.ReceiptDate)
	if err != nil {
		return nil, err
	}

	article, err := uc.articleRepo.GetByCode(ctx, in.ArticleCode)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.NotFound("artículo %s", in.ArticleCode)
	}

	lot := &entity.StockLot{
		ArticleCode:  article.Code,
		ReceivedQty:  in.Quantity,
		AvailableQty: in.Quantity,
		UnitPrice:    in.UnitPrice,
		ReceiptDate:  date,
	}

	unlock := uc.locks.lock(article.Code)
	defer unlock()

	err = uc.txRunner.Run(ctx, func(lots repository.LotRepository, _ repository.SaleRepository) error {
		return lots.Create(ctx, lot)
	})
	if err != nil {
		return nil, err
	}

	uc.observer.LotReceived(lot.ArticleCode, lot.ReceivedQty)
	uc.log.Info().
		Int64("lot_id", lot.ID).
		Str("article", lot.ArticleCode).
		Int("quantity", lot.ReceivedQty).
		Str("unit_price", lot.UnitPrice.String()).
		Str("date", lot.ReceiptDate).
		Msg("recepción registrada")
	return lot, nil
}

// Sell vende quantity unidades consumiendo lotes del más antiguo al más nuevo.
// Si el stock total no alcanza devuelve ErrInsufficientStock y no modifica nada.
// La venta se guarda como una sola fila con el precio indicado; el desglose por lote
// queda en sus asignaciones.
func (uc *LedgerUseCase) Sell(ctx context.Context, in SellInput) (*entity.Sale, error) {
	in.ArticleCode = strings.TrimSpace(in.ArticleCode)
	if in.ProjectID <= 0 {
		return nil, domain.Invalid("project_id es requerido")
	}
	if in.ArticleCode == "" {
		return nil, domain.Invalid("article_code es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad vendida debe ser mayor que 0")
	}
	if !entity.QuantityFits(in.Quantity) {
		return nil, domain.Invalid("la cantidad vendida no puede superar %d", entity.MaxQuantity)
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.Invalid("el precio de venta no puede ser negativo")
	}
	if !entity.PriceFits(in.UnitPrice) {
		return nil, domain.Invalid("el precio de venta admite como mucho %d decimales y 12 dígitos enteros", entity.PriceScale)
	}
	date, err := uc.resolveDate(in.SaleDate)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		uc.observer.SaleRejected("project_not_found")
		return nil, domain.NotFound("proyecto %d", in.ProjectID)
	}
	article, err := uc.articleRepo.GetByCode(ctx, in.ArticleCode)
	if err != nil {
		return nil, err
	}
	if article == nil {
		uc.observer.SaleRejected("article_not_found")
		return nil, domain.NotFound("artículo %s", in.ArticleCode)
	}

	sale := &entity.Sale{
		ProjectID:   project.ID,
		ArticleCode: article.Code,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		SaleDate:    date,
	}

	unlock := uc.locks.lock(article.Code)
	defer unlock()

	err = uc.txRunner.Run(ctx, func(lots repository.LotRepository, sales repository.SaleRepository) error {
		available, err := lots.ListAvailableForUpdate(ctx, article.Code)
		if err != nil {
			return err
		}
		inventory.SortLots(available)

		draws, err := inventory.PlanConsumption(article.Code, available, in.Quantity)
		if err != nil {
			return err
		}
		for _, d := range draws {
			if err := lots.UpdateAvailable(ctx, d.LotID, d.Remaining); err != nil {
				return err
			}
		}
		sale.Allocations = inventory.Allocations(0, draws)
		return sales.Create(ctx, sale)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.observer.SaleRejected("insufficient_stock")
			uc.log.Warn().
				Str("article", article.Code).
				Int("requested", in.Quantity).
				Int64("project_id", project.ID).
				Msg("venta rechazada: stock insuficiente")
		}
		return nil, err
	}

	uc.observer.SaleRecorded(sale.ArticleCode, sale.Quantity)
	uc.log.Info().
		Int64("sale_id", sale.ID).
		Int64("project_id", sale.ProjectID).
		Str("article", sale.ArticleCode).
		Int("quantity", sale.Quantity).
		Int("lots", len(sale.Allocations)).
		Msg("venta registrada")
	return sale, nil
}

// Lots lotes de un artículo en orden FIFO. Un artículo desconocido devuelve lista vacía.
func (uc *LedgerUseCase) Lots(ctx context.Context, articleCode string, includeZero bool) ([]entity.StockLot, error) {
	lots, err := uc.lotRepo.ListByArticle(ctx, strings.TrimSpace(articleCode), includeZero)
	if err != nil {
		return nil, err
	}
	inventory.SortLots(lots)
	return lots, nil
}

func (uc *LedgerUseCase) resolveDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.Today(uc.now()), nil
	}
	if !entity.ValidDate(s) {
		return "", domain.Invalid("fecha %q no tiene formato YYYY-MM-DD", s)
	}
	return s, nil
}
