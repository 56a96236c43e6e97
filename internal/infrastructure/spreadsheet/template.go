package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/transform"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
)

// templateSheet nombre de la hoja en las plantillas xlsx.
const templateSheet = "Carga"

// WriteCSV escribe encabezado y filas con la convención de d (delimitador, decimal y charset).
// Las celdas pueden ser string, int, decimal.Decimal o time.Time.
func (d *Codec) WriteCSV(w io.Writer, header []string, rows [][]any) error {
	enc, err := charmapFor(d.csv.Charset)
	if err != nil {
		return err
	}
	var tw *transform.Writer
	if enc != nil {
		tw = transform.NewWriter(w, enc.NewEncoder())
		w = tw
	}

	format := planilla.NumberFormat{Decimal: d.csv.DecimalMark}
	writer := csv.NewWriter(w)
	writer.Comma = d.csv.Delimiter
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = formatCell(v, format)
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("escribir fila: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	if tw != nil {
		return tw.Close()
	}
	return nil
}

func formatCell(v any, format planilla.NumberFormat) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case decimal.Decimal:
		return format.Format(x)
	case time.Time:
		return x.Format("02-01-2006")
	default:
		return fmt.Sprint(x)
	}
}

// WriteXLSX escribe un libro con una hoja: encabezado en negrita y las filas de ejemplo.
// Los decimales se guardan como número y las fechas con formato de fecha.
func (d *Codec) WriteXLSX(w io.Writer, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(templateSheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("estilo encabezado: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(templateSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("aplicar estilo: %w", err)
	}

	for r, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				cells[i] = d.InexactFloat64()
				continue
			}
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(templateSheet, cell, &cells); err != nil {
			return fmt.Errorf("escribir fila %d: %w", r+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("escribir libro: %w", err)
	}
	return nil
}
