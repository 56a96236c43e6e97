package repository

import (
	"context"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
)

// SubsidiariaRepository define el puerto de persistencia para Subsidiaria (DIP).
// La implementación vive en infrastructure.
type SubsidiariaRepository interface {
	Create(ctx context.Context, s *entity.Subsidiaria) error
	GetByID(ctx context.Context, id string) (*entity.Subsidiaria, error)
	// GetByIdentificacionFiscal busca por llave natural; devuelve (nil, nil) si no existe.
	GetByIdentificacionFiscal(ctx context.Context, fiscalID string) (*entity.Subsidiaria, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Subsidiaria, error)
}
