package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// dateLayout formato de fechas en el cuerpo JSON.
const dateLayout = "2006-01-02"

// reporteMaxFilas tope de filas del reporte PDF.
const reporteMaxFilas = 500

// ReportePDFGenerator genera el PDF del listado de calificaciones.
type ReportePDFGenerator interface {
	GenerateCalificacionesPDF(ctx context.Context, items []dto.CalificacionResponse, generadoEn time.Time) ([]byte, error)
}

// CalificacionUseCase mantenedor manual de calificaciones y contadores del panel.
type CalificacionUseCase struct {
	repo     repository.CalificacionRepository
	subsRepo repository.SubsidiariaRepository
	pdf      ReportePDFGenerator
	now      func() time.Time
}

// NewCalificacionUseCase construye el caso de uso. pdf puede ser nil si no se expone el reporte.
func NewCalificacionUseCase(repo repository.CalificacionRepository, subsRepo repository.SubsidiariaRepository, pdf ReportePDFGenerator) *CalificacionUseCase {
	return &CalificacionUseCase{repo: repo, subsRepo: subsRepo, pdf: pdf, now: time.Now}
}

// Create registra una calificación a mano: creador y modificador son userID, origen Manual.
func (uc *CalificacionUseCase) Create(ctx context.Context, userID string, in dto.CalificacionRequest) (*dto.CalificacionResponse, error) {
	sub, err := uc.subsidiaria(ctx, in.SubsidiariaID)
	if err != nil {
		return nil, err
	}
	c := &entity.Calificacion{}
	if err := applyRequest(c, in); err != nil {
		return nil, err
	}
	now := uc.now()
	c.ID = uuid.New().String()
	c.Origen = entity.OrigenManual
	c.UsuarioCreador = userID
	c.UsuarioModificador = userID
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCalificacionResponse(c, sub, ""), nil
}

// GetByID obtiene una calificación; (nil, nil) si no existe.
func (uc *CalificacionUseCase) GetByID(ctx context.Context, id string) (*dto.CalificacionResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	sub, err := uc.subsRepo.GetByID(ctx, c.SubsidiariaID)
	if err != nil {
		return nil, err
	}
	return toCalificacionResponse(c, sub, ""), nil
}

// Update reemplaza los campos de negocio y deja el origen en Manual. El creador se conserva; el modificador pasa a ser userID.
func (uc *CalificacionUseCase) Update(ctx context.Context, id, userID string, in dto.CalificacionRequest) (*dto.CalificacionResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	sub, err := uc.subsidiaria(ctx, in.SubsidiariaID)
	if err != nil {
		return nil, err
	}
	updated := &entity.Calificacion{
		ID:             c.ID,
		UsuarioCreador: c.UsuarioCreador,
		CreatedAt:      c.CreatedAt,
	}
	if err := applyRequest(updated, in); err != nil {
		return nil, err
	}
	updated.Origen = entity.OrigenManual
	updated.UsuarioModificador = userID
	updated.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return toCalificacionResponse(updated, sub, ""), nil
}

// Delete elimina la calificación y devuelve el mensaje de confirmación con el nombre de la subsidiaria.
func (uc *CalificacionUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	nombre := c.SubsidiariaID
	sub, err := uc.subsRepo.GetByID(ctx, c.SubsidiariaID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		nombre = sub.NombreLegal
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{
		Message: fmt.Sprintf("La calificación de %s fue eliminada exitosamente.", nombre),
	}, nil
}

// List lista calificaciones, las de periodo más reciente primero.
func (uc *CalificacionUseCase) List(ctx context.Context, limit, offset int) (*dto.CalificacionListResponse, error) {
	items, err := uc.list(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CalificacionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Resumen total de registros y creados en los últimos 7 días.
func (uc *CalificacionUseCase) Resumen(ctx context.Context) (*dto.ResumenResponse, error) {
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	recientes, err := uc.repo.CountCreatedSince(ctx, uc.now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return &dto.ResumenResponse{Total: total, UltimosSieteDias: recientes}, nil
}

// ReportePDF genera el listado en PDF y su nombre de archivo.
func (uc *CalificacionUseCase) ReportePDF(ctx context.Context) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("reporte pdf no configurado")
	}
	items, err := uc.list(ctx, reporteMaxFilas, 0)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	doc, err := uc.pdf.GenerateCalificacionesPDF(ctx, items, now)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("calificaciones_%s.pdf", now.Format("20060102")), nil
}

func (uc *CalificacionUseCase) list(ctx context.Context, limit, offset int) ([]dto.CalificacionResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CalificacionResponse, 0, len(list))
	for _, it := range list {
		sub := &entity.Subsidiaria{
			ID:                   it.Calificacion.SubsidiariaID,
			NombreLegal:          it.SubsidiariaName,
			IdentificacionFiscal: it.SubsidiariaRUT,
		}
		items = append(items, *toCalificacionResponse(it.Calificacion, sub, it.CreadorEmail))
	}
	return items, nil
}

func (uc *CalificacionUseCase) subsidiaria(ctx context.Context, id string) (*entity.Subsidiaria, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: subsidiaria_id es requerido", domain.ErrInvalidInput)
	}
	sub, err := uc.subsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: la subsidiaria no existe", domain.ErrInvalidInput)
	}
	return sub, nil
}

// applyRequest copia y valida los campos de negocio del request sobre c.
func applyRequest(c *entity.Calificacion, in dto.CalificacionRequest) error {
	var err error
	c.SubsidiariaID = in.SubsidiariaID
	c.Ejercicio = in.Ejercicio
	c.Mercado = strings.TrimSpace(in.Mercado)
	c.Instrumento = strings.TrimSpace(in.Instrumento)
	c.Secuencia = in.Secuencia
	c.NumeroDividendo = in.NumeroDividendo
	c.TipoSociedad = strings.TrimSpace(in.TipoSociedad)
	c.Estado = strings.TrimSpace(in.Estado)
	if c.FechaPago, err = parseDate("fecha_pago", in.FechaPago); err != nil {
		return err
	}
	if c.FechaInicioPeriodo, err = parseDate("fecha_inicio_periodo", in.FechaInicioPeriodo); err != nil {
		return err
	}
	if c.FechaFinPeriodo, err = parseDate("fecha_fin_periodo", in.FechaFinPeriodo); err != nil {
		return err
	}
	if c.FechaInicioPeriodo != nil && c.FechaFinPeriodo != nil && c.FechaFinPeriodo.Before(*c.FechaInicioPeriodo) {
		return fmt.Errorf("%w: fecha_fin_periodo es anterior a fecha_inicio_periodo", domain.ErrInvalidInput)
	}
	if in.ValorHistorico != nil {
		c.ValorHistorico = decimal.NewNullDecimal(*in.ValorHistorico)
	}
	if in.MontoImpuesto != nil {
		c.MontoImpuesto = decimal.NewNullDecimal(*in.MontoImpuesto)
	}

	rule := planilla.NewFactorSumRule()
	sum := decimal.Zero
	for n, v := range in.Factores {
		if n < entity.FactorMin || n > entity.FactorMax {
			return fmt.Errorf("%w: factor %d fuera de rango (%d a %d)", domain.ErrInvalidInput, n, entity.FactorMin, entity.FactorMax)
		}
		c.SetFactor(n, decimal.NewNullDecimal(v))
		if n <= 19 {
			sum = sum.Add(v)
		}
	}
	if rule.Exceeds(sum) {
		return fmt.Errorf("%w: la suma de Factores 8 al 19 es mayor que 1", domain.ErrInvalidInput)
	}
	return nil
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato AAAA-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toCalificacionResponse(c *entity.Calificacion, sub *entity.Subsidiaria, creadorEmail string) *dto.CalificacionResponse {
	out := &dto.CalificacionResponse{
		ID:                 c.ID,
		SubsidiariaID:      c.SubsidiariaID,
		Ejercicio:          c.Ejercicio,
		Mercado:            c.Mercado,
		Instrumento:        c.Instrumento,
		FechaPago:          c.FechaPago,
		Secuencia:          c.Secuencia,
		NumeroDividendo:    c.NumeroDividendo,
		TipoSociedad:       c.TipoSociedad,
		ValorHistorico:     nullDecimalPtr(c.ValorHistorico),
		FechaInicioPeriodo: c.FechaInicioPeriodo,
		FechaFinPeriodo:    c.FechaFinPeriodo,
		MontoImpuesto:      nullDecimalPtr(c.MontoImpuesto),
		Estado:             c.Estado,
		Origen:             c.Origen,
		UsuarioCreador:     c.UsuarioCreador,
		CreadorEmail:       creadorEmail,
		UsuarioModificador: c.UsuarioModificador,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if sub != nil {
		out.SubsidiariaNombre = sub.NombreLegal
		out.IdentificacionFiscal = sub.IdentificacionFiscal
	}
	for n := entity.FactorMin; n <= entity.FactorMax; n++ {
		if f := c.Factor(n); f.Valid {
			if out.Factores == nil {
				out.Factores = make(map[int]decimal.Decimal)
			}
			out.Factores[n] = f.Decimal
		}
	}
	return out
}
