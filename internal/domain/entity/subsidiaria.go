package entity

import "time"

// Estados válidos para Subsidiaria.
const (
	SubsidiariaActiva   = "active"
	SubsidiariaInactiva = "inactive"
)

// Subsidiaria representa una empresa subsidiaria del holding.
// IdentificacionFiscal (RUT) es la llave natural usada por las cargas masivas.
type Subsidiaria struct {
	ID                   string
	NombreLegal          string
	IdentificacionFiscal string // RUT normalizado, ej. "76000000-1"
	Pais                 string
	Estado               string // active, inactive
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
