package carga

import (
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
)

// Tipos de carga masiva.
const (
	TipoFactor = "factor"
	TipoMonto  = "monto"
)

// ConvertFunc arma la llave única y los campos de negocio de una fila ya resuelta.
// Cualquier error se informa como error de formato de la fila.
type ConvertFunc func(row planilla.Row, subsidiariaID string) (entity.ClaveUnica, *entity.Calificacion, error)

// Pipeline describe una carga concreta: columnas requeridas, reglas del lote y conversión por fila.
type Pipeline struct {
	Tipo     string
	Origen   string
	Manifest planilla.Manifest
	// Rules se evalúan sobre el lote completo antes de escribir.
	Rules []planilla.Rule
	// ColumnaIDFiscal columna canónica con la identificación fiscal de la subsidiaria.
	ColumnaIDFiscal string
	Convert         ConvertFunc
	// Ejemplo fila de muestra para la plantilla, en el orden del manifiesto.
	Ejemplo []any
}
