package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/rut"
)

// SubsidiariaUseCase aplica reglas de negocio para subsidiarias.
type SubsidiariaUseCase struct {
	repo repository.SubsidiariaRepository
}

// NewSubsidiariaUseCase construye el caso de uso con el puerto de persistencia.
func NewSubsidiariaUseCase(repo repository.SubsidiariaRepository) *SubsidiariaUseCase {
	return &SubsidiariaUseCase{repo: repo}
}

// Create registra una subsidiaria. El RUT se valida (dígito verificador) y se guarda
// normalizado como "cuerpo-DV". Devuelve domain.ErrDuplicate si el RUT ya existe.
func (uc *SubsidiariaUseCase) Create(ctx context.Context, in dto.CreateSubsidiariaRequest) (*dto.SubsidiariaResponse, error) {
	nombre := strings.TrimSpace(in.NombreLegal)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre_legal es requerido", domain.ErrInvalidInput)
	}
	if err := rut.Validate(in.IdentificacionFiscal); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFiscalID, err)
	}
	fiscalID := rut.Format(in.IdentificacionFiscal)

	existing, err := uc.repo.GetByIdentificacionFiscal(ctx, fiscalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	pais := in.Pais
	if pais == "" {
		pais = "Chile"
	}
	now := time.Now()
	s := &entity.Subsidiaria{
		ID:                   uuid.New().String(),
		NombreLegal:          nombre,
		IdentificacionFiscal: fiscalID,
		Pais:                 pais,
		Estado:               entity.SubsidiariaActiva,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSubsidiariaResponse(s), nil
}

// GetByID obtiene una subsidiaria por ID; (nil, nil) si no existe.
func (uc *SubsidiariaUseCase) GetByID(ctx context.Context, id string) (*dto.SubsidiariaResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSubsidiariaResponse(s), nil
}

// List lista subsidiarias con paginación.
func (uc *SubsidiariaUseCase) List(ctx context.Context, limit, offset int) (*dto.SubsidiariaListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubsidiariaResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubsidiariaResponse(s))
	}
	return &dto.SubsidiariaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSubsidiariaResponse(s *entity.Subsidiaria) *dto.SubsidiariaResponse {
	if s == nil {
		return nil
	}
	return &dto.SubsidiariaResponse{
		ID:                   s.ID,
		NombreLegal:          s.NombreLegal,
		IdentificacionFiscal: s.IdentificacionFiscal,
		Pais:                 s.Pais,
		Estado:               s.Estado,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
