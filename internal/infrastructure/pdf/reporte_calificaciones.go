// Package pdf genera el reporte PDF del listado de calificaciones tributarias.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de emisión │ total de registros      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Subsidiaria | RUT | Fecha | Instrumento | Monto | …  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/usecase"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
)

var _ usecase.ReportePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.ReportePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	holding string
}

// NewMarotoPDFGenerator construye el generador; holding aparece como autor del documento.
func NewMarotoPDFGenerator(holding string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{holding: holding}
}

// GenerateCalificacionesPDF genera el listado y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCalificacionesPDF(
	_ context.Context,
	items []dto.CalificacionResponse,
	generadoEn time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Calificaciones tributarias", true).
		WithAuthor(g.holding, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(items), generadoEn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range tableDetailRows(items) {
		m.AddRows(r)
	}
	if len(items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay calificaciones registradas.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
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

// headerRow: título y fecha (izq), total de registros (der).
func headerRow(total int, generadoEn time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CALIFICACIONES TRIBUTARIAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+generadoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d registros", total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Subsidiaria", 3, align.Left),
		h("RUT", 2, align.Left),
		h("Fecha", 1, align.Center),
		h("Instrumento", 2, align.Left),
		h("Monto / Valor", 2, align.Right),
		h("Origen", 2, align.Left),
	)
}

// tableDetailRows: una fila por calificación.
func tableDetailRows(items []dto.CalificacionResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		result = append(result, row.New(6).Add(
			cell(it.SubsidiariaNombre, 3, align.Left),
			cell(it.IdentificacionFiscal, 2, align.Left),
			cell(fechaDe(it), 1, align.Center),
			cell(nonEmpty(it.Instrumento, "—"), 2, align.Left),
			cell(montoDe(it), 2, align.Right),
			cell(origenCorto(it.Origen), 2, align.Left),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Montos en formato regional (miles con punto, decimales con coma).", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// fechaDe inicio del periodo para montos, fecha de pago para factores.
func fechaDe(it dto.CalificacionResponse) string {
	switch {
	case it.FechaInicioPeriodo != nil:
		return it.FechaInicioPeriodo.Format("02-01-2006")
	case it.FechaPago != nil:
		return it.FechaPago.Format("02-01-2006")
	}
	return "—"
}

func montoDe(it dto.CalificacionResponse) string {
	switch {
	case it.MontoImpuesto != nil:
		return "$" + formatDecimal(*it.MontoImpuesto)
	case it.ValorHistorico != nil:
		return formatDecimal(*it.ValorHistorico)
	}
	return "—"
}

func origenCorto(origen string) string {
	switch origen {
	case entity.OrigenCargaMasivaFactor:
		return "Carga factor"
	case entity.OrigenCargaMasivaMonto:
		return "Carga monto"
	}
	return nonEmpty(origen, "—")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatDecimal formato regional con 2 decimales. Ej: 125000.75 → "125.000,75".
func formatDecimal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	ent, dec, _ := strings.Cut(s, ".")
	return sign + formatMiles(ent) + "," + dec
}

// formatMiles inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMiles(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
