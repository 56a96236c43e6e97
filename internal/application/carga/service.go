package carga

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/logger"
)

// Formatos de plantilla.
const (
	FormatoCSV  = "csv"
	FormatoXLSX = "xlsx"
)

// Service orquesta las cargas masivas: lectura, validaciones del lote y escritura fila a fila.
type Service struct {
	decoder    Decoder
	templates  TemplateWriter
	finder     SubsidiariaFinder
	reconciler *Reconciler
	log        *logger.Logger
	pipelines  map[string]Pipeline
}

// NewService construye el servicio con las cargas de factores y de montos.
func NewService(
	decoder Decoder,
	templates TemplateWriter,
	finder SubsidiariaFinder,
	txRunner TxRunner,
	log *logger.Logger,
) *Service {
	return &Service{
		decoder:    decoder,
		templates:  templates,
		finder:     finder,
		reconciler: NewReconciler(txRunner),
		log:        log,
		pipelines: map[string]Pipeline{
			TipoFactor: FactorPipeline(),
			TipoMonto:  MontoPipeline(),
		},
	}
}

// ImportFactor procesa una carga de factores.
func (s *Service) ImportFactor(ctx context.Context, filename string, r io.Reader, userID string) (*Summary, error) {
	return s.Import(ctx, TipoFactor, filename, r, userID)
}

// ImportMonto procesa una carga de montos.
func (s *Service) ImportMonto(ctx context.Context, filename string, r io.Reader, userID string) (*Summary, error) {
	return s.Import(ctx, TipoMonto, filename, r, userID)
}

// Import ejecuta la carga tipo sobre el archivo. Los errores que abortan el lote
// (formato, lectura, columnas, regla de factores) se devuelven sin escribir nada;
// los errores de fila quedan en Summary.Failed y la carga continúa.
func (s *Service) Import(ctx context.Context, tipo, filename string, r io.Reader, userID string) (*Summary, error) {
	p, ok := s.pipelines[tipo]
	if !ok {
		return nil, fmt.Errorf("tipo de carga %q: %w", tipo, domain.ErrInvalidInput)
	}

	tbl, err := s.validate(p, filename, r)
	if err != nil {
		s.log.Warn().Err(err).Str("tipo", tipo).Str("archivo", filename).Str("user_id", userID).
			Msg("carga masiva rechazada")
		return nil, err
	}

	summary := &Summary{Tipo: tipo, Archivo: filename}
	resolver := NewResolver(s.finder)
	for _, row := range tbl.Rows {
		summary.Add(s.processRow(ctx, p, resolver, row, userID))
	}

	s.log.Info().
		Str("tipo", tipo).
		Str("archivo", filename).
		Str("user_id", userID).
		Int("creados", summary.Created).
		Int("actualizados", summary.Updated).
		Int("fallidos", len(summary.Failed)).
		Msg("carga masiva procesada")
	return summary, nil
}

// validate lee el archivo y aplica los chequeos del lote completo, en orden.
func (s *Service) validate(p Pipeline, filename string, r io.Reader) (*planilla.Table, error) {
	tbl, err := s.decoder.Decode(filename, r)
	if err != nil {
		return nil, err
	}
	if err := p.Manifest.Validate(tbl); err != nil {
		return nil, err
	}
	for _, rule := range p.Rules {
		if err := rule.Validate(tbl); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func (s *Service) processRow(ctx context.Context, p Pipeline, resolver *Resolver, row planilla.Row, userID string) RowResult {
	subsidiariaID, err := resolver.Resolve(ctx, row.Raw(p.ColumnaIDFiscal))
	if err != nil {
		var nf *domain.SubsidiaryNotFoundError
		if errors.As(err, &nf) {
			return RowResult{Row: row.Number, Err: nf}
		}
		return RowResult{Row: row.Number, Err: &domain.UnknownRowError{Cause: err}}
	}

	key, rec, err := p.Convert(row, subsidiariaID)
	if err != nil {
		return RowResult{Row: row.Number, Err: &domain.RowFormatError{Row: row.Number, Detail: err.Error()}}
	}

	created, err := s.reconciler.Reconcile(ctx, key, rec, p.Origen, userID)
	if err != nil {
		return RowResult{Row: row.Number, Err: &domain.UnknownRowError{Cause: err}}
	}
	return RowResult{Row: row.Number, Created: created}
}

// Plantilla escribe la plantilla de la carga tipo en formato csv o xlsx y devuelve el nombre
// de archivo sugerido. El encabezado es el mismo manifiesto que se valida al subir.
func (s *Service) Plantilla(w io.Writer, tipo, formato string) (string, error) {
	p, ok := s.pipelines[tipo]
	if !ok {
		return "", fmt.Errorf("tipo de carga %q: %w", tipo, domain.ErrInvalidInput)
	}
	header := p.Manifest.Columns()
	rows := [][]any{p.Ejemplo}
	filename := fmt.Sprintf("plantilla_carga_%s.%s", tipo, formato)

	switch formato {
	case "", FormatoCSV:
		filename = fmt.Sprintf("plantilla_carga_%s.%s", tipo, FormatoCSV)
		return filename, s.templates.WriteCSV(w, header, rows)
	case FormatoXLSX:
		return filename, s.templates.WriteXLSX(w, header, rows)
	default:
		return "", domain.ErrUnsupportedFormat
	}
}
