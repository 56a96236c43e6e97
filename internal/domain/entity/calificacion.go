package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Rango de factores de una calificación: Factor 8 .. Factor 37 (30 factores).
const (
	FactorMin   = 8
	FactorMax   = 37
	NumFactores = FactorMax - FactorMin + 1
)

// Valores de Origen (cómo se creó o actualizó el registro por última vez).
const (
	OrigenManual            = "Manual"
	OrigenCargaMasivaFactor = "Carga Masiva Factor"
	OrigenCargaMasivaMonto  = "Carga Masiva Monto"
)

// Calificacion representa una fila de calificación tributaria de una subsidiaria.
// Los campos de Factor (ejercicio, instrumento, fecha de pago, factores) y los de Monto
// (periodo, monto de impuesto) son opcionales entre sí: cada carga llena su propio grupo.
type Calificacion struct {
	ID            string
	SubsidiariaID string

	Ejercicio       *int
	Mercado         string
	Instrumento     string
	FechaPago       *time.Time
	Secuencia       *int
	NumeroDividendo *int
	TipoSociedad    string
	ValorHistorico  decimal.NullDecimal
	Factores        [NumFactores]decimal.NullDecimal // índice 0 = Factor 8

	FechaInicioPeriodo *time.Time
	FechaFinPeriodo    *time.Time
	MontoImpuesto      decimal.NullDecimal
	Estado             string

	Origen             string
	UsuarioCreador     string // se asigna una vez, nunca se sobrescribe
	UsuarioModificador string // se actualiza en cada escritura
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Factor devuelve el factor n (8..37).
func (c *Calificacion) Factor(n int) decimal.NullDecimal {
	if n < FactorMin || n > FactorMax {
		return decimal.NullDecimal{}
	}
	return c.Factores[n-FactorMin]
}

// SetFactor asigna el factor n (8..37). Fuera de rango se ignora.
func (c *Calificacion) SetFactor(n int, v decimal.NullDecimal) {
	if n < FactorMin || n > FactorMax {
		return
	}
	c.Factores[n-FactorMin] = v
}

// ClaveUnica identifica un registro para el upsert de una carga masiva.
// Las implementaciones son comparables (se pueden usar como llave de mapa).
type ClaveUnica interface {
	// AplicarA copia los campos de la clave sobre el registro.
	AplicarA(c *Calificacion)
	String() string
}

// ClaveFactor llave única de la carga de factores.
type ClaveFactor struct {
	SubsidiariaID   string
	Ejercicio       int
	Instrumento     string
	FechaPago       time.Time
	Secuencia       int
	NumeroDividendo int
}

func (k ClaveFactor) AplicarA(c *Calificacion) {
	ejercicio, secuencia, dividendo, fecha := k.Ejercicio, k.Secuencia, k.NumeroDividendo, k.FechaPago
	c.SubsidiariaID = k.SubsidiariaID
	c.Ejercicio = &ejercicio
	c.Instrumento = k.Instrumento
	c.FechaPago = &fecha
	c.Secuencia = &secuencia
	c.NumeroDividendo = &dividendo
}

func (k ClaveFactor) String() string {
	return fmt.Sprintf("factor[%s|%d|%s|%s|%d|%d]", k.SubsidiariaID, k.Ejercicio, k.Instrumento,
		k.FechaPago.Format("2006-01-02"), k.Secuencia, k.NumeroDividendo)
}

// ClaveMonto llave única de la carga de montos (DJ 1948).
type ClaveMonto struct {
	SubsidiariaID      string
	FechaInicioPeriodo time.Time
}

func (k ClaveMonto) AplicarA(c *Calificacion) {
	fecha := k.FechaInicioPeriodo
	c.SubsidiariaID = k.SubsidiariaID
	c.FechaInicioPeriodo = &fecha
}

func (k ClaveMonto) String() string {
	return fmt.Sprintf("monto[%s|%s]", k.SubsidiariaID, k.FechaInicioPeriodo.Format("2006-01-02"))
}
