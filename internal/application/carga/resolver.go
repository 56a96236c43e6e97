package carga

import (
	"context"
	"fmt"
	"strings"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/rut"
)

// Resolver traduce el ID fiscal de una fila al ID interno de la subsidiaria.
// Guarda en memoria los resultados del lote (encontrados y no encontrados); no se comparte entre cargas.
type Resolver struct {
	finder SubsidiariaFinder
	cache  map[string]string
}

// NewResolver crea un resolver con caché vacía.
func NewResolver(finder SubsidiariaFinder) *Resolver {
	return &Resolver{finder: finder, cache: make(map[string]string)}
}

// LimpiarIDFiscal lleva el valor de la celda a la forma en que se guarda la subsidiaria:
// recorta espacios, elimina el ".0" que agregan las planillas a las celdas numéricas y
// formatea el RUT como "cuerpo-DV".
// "76000000-1.0", " 76.000.000-1 " y "760000001" quedan como "76000000-1".
func LimpiarIDFiscal(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	return rut.Format(s)
}

// Resolve devuelve el ID de la subsidiaria o *domain.SubsidiaryNotFoundError.
// Los errores de infraestructura se propagan envueltos.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	fiscalID := LimpiarIDFiscal(raw)
	if id, ok := r.cache[fiscalID]; ok {
		if id == "" {
			return "", &domain.SubsidiaryNotFoundError{FiscalID: fiscalID}
		}
		return id, nil
	}
	if fiscalID == "" {
		return "", &domain.SubsidiaryNotFoundError{FiscalID: fiscalID}
	}
	s, err := r.finder.GetByIdentificacionFiscal(ctx, fiscalID)
	if err != nil {
		return "", fmt.Errorf("buscar subsidiaria %s: %w", fiscalID, err)
	}
	if s == nil {
		r.cache[fiscalID] = ""
		return "", &domain.SubsidiaryNotFoundError{FiscalID: fiscalID}
	}
	r.cache[fiscalID] = s.ID
	return s.ID, nil
}
