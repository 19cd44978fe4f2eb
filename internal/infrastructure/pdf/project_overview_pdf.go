// Package pdf genera el resumen de un proyecto (ventas y facturación) como PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Projekt + Kunde      │  Fecha de emisión            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Datum | Artikel | Menge | Einzelpreis | Umsatz       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: Gesamtumsatz                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

var _ report.ProjectPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 64, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ProjectPDFGenerator usando Maroto v2.
// Los importes se formatean en alemán (1.234,50 EUR).
type MarotoPDFGenerator struct {
	company string
	printer *message.Printer
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		company: company,
		printer: message.NewPrinter(language.German),
		now:     time.Now,
	}
}

// ProjectOverview genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) ProjectOverview(o *dto.ProjectOverviewResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Projektübersicht "+o.ProjectName, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(o.Sales) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Keine Verkäufe in diesem Projekt.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	for _, s := range o.Sales {
		m.AddRows(g.saleRow(s))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(o *dto.ProjectOverviewResponse) core.Row {
	return row.New(20).Add(
		col.New(8).Add(
			text.New(g.company, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New("Projekt: "+o.ProjectName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
			text.New("Kunde: "+nonEmpty(o.Customer, "-"), props.Text{Size: 9, Top: 14}),
		),
		col.New(4).Add(
			text.New("PROJEKTÜBERSICHT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Stand: "+germanDate(entity.Today(g.now())), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Datum", 2, align.Left),
		h("Artikel", 4, align.Left),
		h("Menge", 1, align.Right),
		h("Einzelpreis", 2, align.Right),
		h("Umsatz", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) saleRow(s dto.ProjectSaleItem) core.Row {
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(germanDate(s.SaleDate), 2, align.Left),
		cell(s.ArticleCode+" "+s.ArticleName, 4, align.Left),
		cell(fmt.Sprintf("%d", s.Quantity), 1, align.Right),
		cell(g.money(s.UnitPrice), 2, align.Right),
		cell(g.money(s.Revenue), 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) totalRow(o *dto.ProjectOverviewResponse) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d Verkäufe", len(o.Sales)), props.Text{
			Size: 8, Top: 3, Color: colorGray,
		})),
		col.New(3).Add(text.New("Gesamtumsatz", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
		})),
		col.New(3).Add(text.New(g.money(o.TotalRevenue), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3, Color: colorPrimary,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores alemanes y dos decimales: 8450 -> "8.450,00 EUR".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2))) + " EUR"
}

// germanDate "2024-02-05" -> "05.02.2024". Fechas inválidas se devuelven tal cual.
func germanDate(s string) string {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02.01.2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
