package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalificacionRequest entrada para crear o editar una calificación a mano.
// Las fechas van en formato YYYY-MM-DD. Factores usa como llave el número de factor (8..37).
type CalificacionRequest struct {
	SubsidiariaID string `json:"subsidiaria_id" validate:"required,uuid"`

	Ejercicio       *int                    `json:"ejercicio"`
	Mercado         string                  `json:"mercado"`
	Instrumento     string                  `json:"instrumento"`
	FechaPago       string                  `json:"fecha_pago"`
	Secuencia       *int                    `json:"secuencia"`
	NumeroDividendo *int                    `json:"numero_dividendo"`
	TipoSociedad    string                  `json:"tipo_sociedad"`
	ValorHistorico  *decimal.Decimal        `json:"valor_historico"`
	Factores        map[int]decimal.Decimal `json:"factores"`

	FechaInicioPeriodo string           `json:"fecha_inicio_periodo"`
	FechaFinPeriodo    string           `json:"fecha_fin_periodo"`
	MontoImpuesto      *decimal.Decimal `json:"monto_impuesto"`
	Estado             string           `json:"estado"`
}

// CalificacionResponse salida de una calificación con datos de auditoría.
type CalificacionResponse struct {
	ID                   string `json:"id"`
	SubsidiariaID        string `json:"subsidiaria_id"`
	SubsidiariaNombre    string `json:"subsidiaria_nombre,omitempty"`
	IdentificacionFiscal string `json:"identificacion_fiscal,omitempty"`

	Ejercicio       *int                    `json:"ejercicio,omitempty"`
	Mercado         string                  `json:"mercado,omitempty"`
	Instrumento     string                  `json:"instrumento,omitempty"`
	FechaPago       *time.Time              `json:"fecha_pago,omitempty"`
	Secuencia       *int                    `json:"secuencia,omitempty"`
	NumeroDividendo *int                    `json:"numero_dividendo,omitempty"`
	TipoSociedad    string                  `json:"tipo_sociedad,omitempty"`
	ValorHistorico  *decimal.Decimal        `json:"valor_historico,omitempty"`
	Factores        map[int]decimal.Decimal `json:"factores,omitempty"`

	FechaInicioPeriodo *time.Time       `json:"fecha_inicio_periodo,omitempty"`
	FechaFinPeriodo    *time.Time       `json:"fecha_fin_periodo,omitempty"`
	MontoImpuesto      *decimal.Decimal `json:"monto_impuesto,omitempty"`
	Estado             string           `json:"estado,omitempty"`

	Origen             string    `json:"origen"`
	UsuarioCreador     string    `json:"usuario_creador,omitempty"`
	CreadorEmail       string    `json:"creador_email,omitempty"`
	UsuarioModificador string    `json:"usuario_modificador,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CalificacionListResponse lista paginada de calificaciones.
type CalificacionListResponse struct {
	Items []CalificacionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// DeleteResponse confirmación de borrado.
type DeleteResponse struct {
	Message string `json:"message"`
}

// ResumenResponse contadores del panel principal.
type ResumenResponse struct {
	Total            int `json:"total"`
	UltimosSieteDias int `json:"ultimos_siete_dias"`
}
