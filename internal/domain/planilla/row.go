package planilla

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row fila de datos con acceso por columna canónica.
// Number es la fila de la planilla (1 = encabezado).
type Row struct {
	Number int
	cells  []string
	table  *Table
}

// Raw devuelve el valor de la celda sin espacios en los extremos ("" si la columna no existe
// o la fila es más corta que el encabezado).
func (r Row) Raw(key string) string {
	i, ok := r.table.index[key]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// IsEmpty informa si la celda está vacía.
func (r Row) IsEmpty(key string) bool { return r.Raw(key) == "" }

// Text alias semántico de Raw para campos de texto.
func (r Row) Text(key string) string { return r.Raw(key) }

// Numeric intenta convertir la celda a decimal; ok=false si está vacía o no es numérica.
func (r Row) Numeric(key string) (decimal.Decimal, bool) {
	d, err := r.table.opts.Format.Parse(r.Raw(key))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Decimal convierte una celda obligatoria a decimal.
func (r Row) Decimal(key string) (decimal.Decimal, error) {
	raw := r.Raw(key)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("columna %s: valor requerido", key)
	}
	d, err := r.table.opts.Format.Parse(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("columna %s: %w", key, err)
	}
	return d, nil
}

// NullDecimal convierte una celda opcional; vacía → NullDecimal inválido.
func (r Row) NullDecimal(key string) (decimal.NullDecimal, error) {
	if r.IsEmpty(key) {
		return decimal.NullDecimal{}, nil
	}
	d, err := r.Decimal(key)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// Int convierte una celda obligatoria a entero. Acepta "2024" y "2024.0" (celdas numéricas
// de libros Excel), rechaza fracciones y valores fuera del rango de INTEGER de PostgreSQL.
func (r Row) Int(key string) (int, error) {
	d, err := r.Decimal(key)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("columna %s: %q no es un número entero", key, r.Raw(key))
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, fmt.Errorf("columna %s: %q está fuera de rango", key, r.Raw(key))
	}
	return int(d.IntPart()), nil
}

var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// dateLayouts formatos aceptados; día antes que mes cuando es ambiguo (convención regional).
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
}

// Date convierte una celda obligatoria a fecha (sin hora, UTC).
func (r Row) Date(key string) (time.Time, error) {
	raw := r.Raw(key)
	if raw == "" {
		return time.Time{}, fmt.Errorf("columna %s: fecha requerida", key)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOnly(t), nil
		}
	}
	if serial := r.table.opts.SerialDate; serial != nil {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			t, err := serial(f)
			if err == nil {
				return dateOnly(t), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("columna %s: %q no es una fecha válida", key, raw)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// groupedComa "1.234,5" o "12.345.678": el primer grupo de miles nunca empieza en 0, así
// "0.125" se rechaza en vez de leerse como 125.
var groupedComa = regexp.MustCompile(`^[+-]?[1-9]\d{0,2}(\.\d{3})+(,\d*)?$`)

// Parse convierte s a decimal según la convención. Vacío es error.
func (f NumberFormat) Parse(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("valor vacío")
	}
	norm := s
	if f.Decimal == ',' {
		if strings.Contains(norm, ".") {
			if !groupedComa.MatchString(norm) {
				return decimal.Zero, fmt.Errorf("%q no es un número válido (separador decimal: coma)", s)
			}
			norm = strings.ReplaceAll(norm, ".", "")
		}
		norm = strings.Replace(norm, ",", ".", 1)
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q no es un número válido", s)
	}
	return d, nil
}

// Format escribe d con la convención (sin separador de miles). Se usa en plantillas.
func (f NumberFormat) Format(d decimal.Decimal) string {
	s := d.String()
	if f.Decimal == ',' {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}
