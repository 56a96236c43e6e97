package postgres

import (
	"context"
	"fmt"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// Asegura que SubsidiariaRepo implementa repository.SubsidiariaRepository.
var _ repository.SubsidiariaRepository = (*SubsidiariaRepo)(nil)

// SubsidiariaRepo implementación del puerto SubsidiariaRepository sobre PostgreSQL.
type SubsidiariaRepo struct {
	q Querier
}

// NewSubsidiariaRepository construye el adaptador de persistencia para subsidiarias.
func NewSubsidiariaRepository(q Querier) *SubsidiariaRepo {
	return &SubsidiariaRepo{q: q}
}

const subsidiariaColumns = `id, nombre_legal, identificacion_fiscal, pais, estado, created_at, updated_at`

func scanSubsidiaria(row scanner) (*entity.Subsidiaria, error) {
	var s entity.Subsidiaria
	if err := row.Scan(&s.ID, &s.NombreLegal, &s.IdentificacionFiscal, &s.Pais, &s.Estado, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una nueva subsidiaria. ID fiscal repetido → domain.ErrDuplicate.
func (r *SubsidiariaRepo) Create(ctx context.Context, s *entity.Subsidiaria) error {
	query := `
		INSERT INTO subsidiarias (` + subsidiariaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.NombreLegal, s.IdentificacionFiscal, s.Pais, s.Estado, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subsidiaria: %w", err)
	}
	return nil
}

// GetByID obtiene una subsidiaria por ID.
func (r *SubsidiariaRepo) GetByID(ctx context.Context, id string) (*entity.Subsidiaria, error) {
	query := `SELECT ` + subsidiariaColumns + ` FROM subsidiarias WHERE id = $1`
	s, err := scanSubsidiaria(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subsidiaria: %w", err)
	}
	return s, nil
}

// GetByIdentificacionFiscal busca por la llave natural usada en las cargas masivas.
func (r *SubsidiariaRepo) GetByIdentificacionFiscal(ctx context.Context, fiscalID string) (*entity.Subsidiaria, error) {
	query := `SELECT ` + subsidiariaColumns + ` FROM subsidiarias WHERE identificacion_fiscal = $1`
	s, err := scanSubsidiaria(r.q.QueryRow(ctx, query, fiscalID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subsidiaria by identificacion fiscal: %w", err)
	}
	return s, nil
}

// List devuelve subsidiarias ordenadas por nombre legal.
func (r *SubsidiariaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Subsidiaria, error) {
	query := `
		SELECT ` + subsidiariaColumns + `
		FROM subsidiarias ORDER BY nombre_legal LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subsidiarias: %w", err)
	}
	defer rows.Close()

	var list []*entity.Subsidiaria
	for rows.Next() {
		s, err := scanSubsidiaria(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subsidiaria: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
