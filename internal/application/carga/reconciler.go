package carga

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// Reconciler crea o actualiza un registro por su llave única conservando el usuario creador.
type Reconciler struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewReconciler construye el reconciliador.
func NewReconciler(txRunner TxRunner) *Reconciler {
	return &Reconciler{txRunner: txRunner, now: time.Now}
}

// Reconcile escribe rec bajo key en una transacción propia.
// Nuevo: creador = modificador = userID. Existente: se conserva el creador almacenado y
// solo cambian los campos de negocio, el origen y el modificador.
func (r *Reconciler) Reconcile(ctx context.Context, key entity.ClaveUnica, rec *entity.Calificacion, origen, userID string) (created bool, err error) {
	err = r.txRunner.RunCalificacion(ctx, func(repo repository.CalificacionRepository) error {
		// Bloquea la fila existente (SELECT FOR UPDATE) hasta el commit
		creador, found, err := repo.FindCreador(ctx, key)
		if err != nil {
			return err
		}

		key.AplicarA(rec)
		rec.Origen = origen
		rec.UsuarioModificador = userID
		if found {
			rec.UsuarioCreador = creador
		} else {
			rec.UsuarioCreador = userID
		}
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		now := r.now()
		rec.CreatedAt = now
		rec.UpdatedAt = now

		created, err = repo.Upsert(ctx, key, rec)
		return err
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
