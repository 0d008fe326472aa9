// Package pdf genera el reporte imprimible de KPIs del dashboard de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del servicio     │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENTAS: ingresos, nº ventas, ticket medio, top producto     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FINANCIERO (solo con acceso): COGS, utilidades, márgenes    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: nota sobre crecimiento provisional                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoKPIReport implementa ports.KPIReportRenderer usando Maroto v2.
type MarotoKPIReport struct {
	title   string
	printer *message.Printer
}

// NewMarotoKPIReport construye el generador; title encabeza cada página.
func NewMarotoKPIReport(title string) *MarotoKPIReport {
	return &MarotoKPIReport{
		title:   title,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// RenderKPIReport genera el PDF y devuelve sus bytes.
func (g *MarotoKPIReport) RenderKPIReport(
	_ context.Context,
	report *analytics.Report,
	generatedAt time.Time,
) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(g.title+" - KPI Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("Sales overview"))
	m.AddRows(
		g.metricRow("Total revenue", g.money(report.TotalRevenue)),
		g.metricRow("Total sales", g.printer.Sprintf("%d", report.TotalSales)),
		g.metricRow("Total products", g.printer.Sprintf("%d", report.TotalProducts)),
		g.metricRow("Average order value", g.money(report.AverageOrderValue)),
		g.metricRow("Top selling product", report.TopSellingProduct),
		g.metricRow("Revenue growth", g.percent(report.RevenueGrowth)),
	)

	if f := report.Financials; f != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("Financial summary"))
		m.AddRows(
			g.metricRow("Cost of goods sold", g.money(f.TotalCOGS)),
			g.metricRow("Gross profit", g.money(f.GrossProfit)),
			g.metricRow("Operating expenses", g.money(f.OperatingExpenses)),
			g.metricRow("Net profit", g.money(f.NetProfit)),
			g.metricRow("Gross profit margin", g.percent(f.GrossProfitMargin)),
			g.metricRow("Net profit margin", g.percent(f.NetProfitMargin)),
		)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoKPIReport) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Key performance indicators", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.UTC().Format("2006-01-02 15:04 UTC"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		}),
	))
}

func (g *MarotoKPIReport) metricRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(7).Add(text.New(label, props.Text{Size: 10, Top: 1, Left: 2})),
		col.New(5).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Right: 2,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Revenue growth is a configured placeholder, not computed from historical data.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles y dos decimales: 1234.5 → "$1,234.50".
func (g *MarotoKPIReport) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func (g *MarotoKPIReport) percent(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2))) + "%"
}
