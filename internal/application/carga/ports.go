package carga

import (
	"context"
	"io"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con el repositorio atado a esa tx.
// Cada fila de una carga se escribe en su propia transacción.
type TxRunner interface {
	RunCalificacion(ctx context.Context, fn func(repo repository.CalificacionRepository) error) error
}

// Decoder convierte el archivo subido en una tabla normalizada.
// Devuelve domain.ErrUnsupportedFormat o *domain.DecodeError cuando no puede leerlo.
type Decoder interface {
	Decode(filename string, r io.Reader) (*planilla.Table, error)
}

// SubsidiariaFinder búsqueda por identificación fiscal; (nil, nil) si no existe.
type SubsidiariaFinder interface {
	GetByIdentificacionFiscal(ctx context.Context, fiscalID string) (*entity.Subsidiaria, error)
}

// TemplateWriter escribe las plantillas de descarga.
type TemplateWriter interface {
	WriteCSV(w io.Writer, header []string, rows [][]any) error
	WriteXLSX(w io.Writer, header []string, rows [][]any) error
}
