package dto

import "time"

// CreateSubsidiariaRequest entrada para registrar una subsidiaria.
type CreateSubsidiariaRequest struct {
	NombreLegal          string `json:"nombre_legal" validate:"required,min=1,max=200"`
	IdentificacionFiscal string `json:"identificacion_fiscal" validate:"required"` // RUT con o sin puntos
	Pais                 string `json:"pais"`
}

// SubsidiariaResponse salida de una subsidiaria.
type SubsidiariaResponse struct {
	ID                   string    `json:"id"`
	NombreLegal          string    `json:"nombre_legal"`
	IdentificacionFiscal string    `json:"identificacion_fiscal"`
	Pais                 string    `json:"pais"`
	Estado               string    `json:"estado"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SubsidiariaListResponse lista paginada de subsidiarias.
type SubsidiariaListResponse struct {
	Items []SubsidiariaResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
