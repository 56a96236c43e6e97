package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/carga"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// Ensure TxRunner implements carga.TxRunner.
var _ carga.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCalificacion inicia una transacción, ejecuta fn con el repositorio de calificaciones atado
// a la tx y hace Commit o Rollback. Los bloqueos tomados por FindCreador duran hasta el Commit.
func (r *TxRunner) RunCalificacion(ctx context.Context, fn func(repo repository.CalificacionRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCalificacionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
