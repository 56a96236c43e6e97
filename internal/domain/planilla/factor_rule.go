package planilla

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
)

// Rule regla de negocio que se evalúa sobre el lote completo antes de escribir.
type Rule interface {
	Validate(t *Table) error
}

// maxEjemplos filas de ejemplo reportadas cuando una regla falla.
const maxEjemplos = 5

// FactorSumRule exige que la suma de Keys por fila no supere Threshold + Tolerance.
// Celdas vacías o no numéricas cuentan como 0 en la suma.
type FactorSumRule struct {
	Keys      []string
	Threshold decimal.Decimal
	Tolerance decimal.Decimal
}

// NewFactorSumRule regla estándar: Factor 8 al 19 suman a lo más 1 (tolerancia 1e-8).
func NewFactorSumRule() FactorSumRule {
	keys := make([]string, 0, 12)
	for n := 8; n <= 19; n++ {
		keys = append(keys, Canonicalize(fmt.Sprintf("Factor %d", n)))
	}
	return FactorSumRule{
		Keys:      keys,
		Threshold: decimal.NewFromInt(1),
		Tolerance: decimal.New(1, -8),
	}
}

// Sum suma los factores de la fila.
func (r FactorSumRule) Sum(row Row) decimal.Decimal {
	sum := decimal.Zero
	for _, k := range r.Keys {
		if v, ok := row.Numeric(k); ok {
			sum = sum.Add(v)
		}
	}
	return sum
}

// Exceeds informa si sum supera Threshold + Tolerance.
func (r FactorSumRule) Exceeds(sum decimal.Decimal) bool {
	return sum.GreaterThan(r.Threshold.Add(r.Tolerance))
}

// Validate rechaza el lote si alguna fila excede el límite.
func (r FactorSumRule) Validate(t *Table) error {
	var count int
	var ejemplos []int
	for _, row := range t.Rows {
		if r.Exceeds(r.Sum(row)) {
			count++
			if len(ejemplos) < maxEjemplos {
				ejemplos = append(ejemplos, row.Number)
			}
		}
	}
	if count > 0 {
		return &domain.FactorSumExceededError{Count: count, Rows: ejemplos}
	}
	return nil
}
