// Package planilla modela una planilla de carga ya decodificada: encabezados canónicos,
// filas con acceso tipado por columna y las validaciones que se aplican al lote completo
// antes de escribir (manifiesto de columnas y regla de suma de factores).
package planilla

import (
	"strings"
	"time"
)

// Canonicalize normaliza un encabezado: mayúsculas y cada tramo de espacios como un "_".
// "Numero de dividendo" → "NUMERO_DE_DIVIDENDO", " Fecha  Inicio " → "FECHA_INICIO".
func Canonicalize(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.ToUpper(strings.Join(strings.Fields(header), "_"))
}

// NumberFormat convención regional para números en celdas de texto.
// Con Decimal ',' el punto solo se acepta como separador de miles ("1.234,56").
type NumberFormat struct {
	Decimal rune
}

var (
	// FormatoPunto celdas con punto decimal (libros Excel leídos en crudo).
	FormatoPunto = NumberFormat{Decimal: '.'}
	// FormatoComa exportaciones regionales: "0,25", "1.234,5".
	FormatoComa = NumberFormat{Decimal: ','}
)

// SerialDateFunc convierte un número de serie de fecha de hoja de cálculo a time.Time.
type SerialDateFunc func(serial float64) (time.Time, error)

// Options describe cómo interpretar las celdas de una tabla.
type Options struct {
	Format NumberFormat
	// SerialDate, si no es nil, permite fechas como número de serie (libros Excel).
	SerialDate SerialDateFunc
}

// Table planilla decodificada. Headers está en forma canónica y en el orden del archivo.
type Table struct {
	Headers []string
	Rows    []Row
	opts    Options
	index   map[string]int
}

// NewTable construye la tabla a partir del encabezado crudo y los registros de datos.
// Las filas completamente vacías se omiten; Row.Number conserva la fila original de la
// planilla (índice del registro + 2, contando la fila de encabezado).
func NewTable(rawHeaders []string, records [][]string, opts Options) *Table {
	if opts.Format.Decimal == 0 {
		opts.Format = FormatoPunto
	}
	t := &Table{
		Headers: make([]string, len(rawHeaders)),
		opts:    opts,
		index:   make(map[string]int, len(rawHeaders)),
	}
	for i, h := range rawHeaders {
		key := Canonicalize(h)
		t.Headers[i] = key
		if _, dup := t.index[key]; !dup && key != "" {
			t.index[key] = i
		}
	}
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, Row{Number: i + 2, cells: rec, table: t})
	}
	return t
}

// Has informa si la tabla tiene la columna canónica key.
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Format devuelve la convención numérica de la tabla.
func (t *Table) Format() NumberFormat { return t.opts.Format }

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
