package repository

import (
	"context"
	"time"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
)

// CalificacionListItem fila del listado con datos de la subsidiaria y del creador.
type CalificacionListItem struct {
	Calificacion    *entity.Calificacion
	SubsidiariaName string
	SubsidiariaRUT  string
	CreadorEmail    string
}

// CalificacionRepository define el puerto de persistencia para Calificacion.
type CalificacionRepository interface {
	Create(ctx context.Context, c *entity.Calificacion) error
	GetByID(ctx context.Context, id string) (*entity.Calificacion, error)
	Update(ctx context.Context, c *entity.Calificacion) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha_inicio_periodo descendente.
	List(ctx context.Context, limit, offset int) ([]CalificacionListItem, error)
	Count(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)

	// FindCreador bloquea (si existe) el registro de la clave y devuelve su usuario creador.
	FindCreador(ctx context.Context, key entity.ClaveUnica) (creador string, found bool, err error)
	// Upsert crea o reemplaza los campos del registro identificado por key en una sola
	// sentencia atómica. En la rama de actualización el usuario creador almacenado se conserva.
	Upsert(ctx context.Context, key entity.ClaveUnica, c *entity.Calificacion) (created bool, err error)
}
