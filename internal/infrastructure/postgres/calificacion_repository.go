package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

var _ repository.CalificacionRepository = (*CalificacionRepo)(nil)

// CalificacionRepo implementación de CalificacionRepository sobre PostgreSQL (usable con pool o tx).
type CalificacionRepo struct {
	q Querier
}

// NewCalificacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCalificacionRepository(q Querier) *CalificacionRepo {
	return &CalificacionRepo{q: q}
}

// factorColumns factor_8 .. factor_37.
var factorColumns = func() []string {
	cols := make([]string, 0, entity.NumFactores)
	for n := entity.FactorMin; n <= entity.FactorMax; n++ {
		cols = append(cols, fmt.Sprintf("factor_%d", n))
	}
	return cols
}()

// Columnas de negocio en el orden de businessArgs.
var businessColumns = append(append([]string{
	"subsidiaria_id", "ejercicio", "mercado", "instrumento", "fecha_pago", "secuencia",
	"numero_dividendo", "tipo_sociedad", "valor_historico",
}, factorColumns...),
	"fecha_inicio_periodo", "fecha_fin_periodo", "monto_impuesto", "estado",
)

func businessArgs(c *entity.Calificacion) []any {
	args := []any{
		c.SubsidiariaID, c.Ejercicio, c.Mercado, c.Instrumento, c.FechaPago, c.Secuencia,
		c.NumeroDividendo, c.TipoSociedad, c.ValorHistorico,
	}
	for _, f := range c.Factores {
		args = append(args, f)
	}
	return append(args, c.FechaInicioPeriodo, c.FechaFinPeriodo, c.MontoImpuesto, c.Estado)
}

// selectColumns columnas de lectura con alias c, en el orden de scanDest.
var selectColumns = func() string {
	cols := []string{"c.id"}
	for _, col := range businessColumns {
		cols = append(cols, "c."+col)
	}
	cols = append(cols,
		"c.origen",
		"COALESCE(c.usuario_creador::text, '')",
		"COALESCE(c.usuario_modificador::text, '')",
		"c.created_at", "c.updated_at",
	)
	return strings.Join(cols, ", ")
}()

func scanDest(c *entity.Calificacion) []any {
	dest := []any{
		&c.ID, &c.SubsidiariaID, &c.Ejercicio, &c.Mercado, &c.Instrumento, &c.FechaPago, &c.Secuencia,
		&c.NumeroDividendo, &c.TipoSociedad, &c.ValorHistorico,
	}
	for i := range c.Factores {
		dest = append(dest, &c.Factores[i])
	}
	return append(dest,
		&c.FechaInicioPeriodo, &c.FechaFinPeriodo, &c.MontoImpuesto, &c.Estado,
		&c.Origen, &c.UsuarioCreador, &c.UsuarioModificador, &c.CreatedAt, &c.UpdatedAt,
	)
}

// placeholders "$from, $from+1, ..." para n argumentos.
func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

// Create persiste una calificación completa (alta manual).
func (r *CalificacionRepo) Create(ctx context.Context, c *entity.Calificacion) error {
	args := append([]any{c.ID}, businessArgs(c)...)
	n := len(args)
	args = append(args, c.Origen, c.UsuarioCreador, c.UsuarioModificador, c.CreatedAt, c.UpdatedAt)
	query := fmt.Sprintf(`
		INSERT INTO calificaciones (id, %s, origen, usuario_creador, usuario_modificador, created_at, updated_at)
		VALUES (%s, $%d, NULLIF($%d, '')::uuid, NULLIF($%d, '')::uuid, $%d, $%d)`,
		strings.Join(businessColumns, ", "), placeholders(1, n), n+1, n+2, n+3, n+4, n+5)

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return mapWriteError("insert calificacion", err)
	}
	return nil
}

// GetByID obtiene una calificación por ID.
func (r *CalificacionRepo) GetByID(ctx context.Context, id string) (*entity.Calificacion, error) {
	query := `SELECT ` + selectColumns + ` FROM calificaciones c WHERE c.id = $1`
	var c entity.Calificacion
	if err := r.q.QueryRow(ctx, query, id).Scan(scanDest(&c)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calificacion: %w", err)
	}
	return &c, nil
}

// updateSQL $1 = id, luego businessColumns, origen, usuario_modificador y updated_at.
var updateSQL = func() string {
	sets := make([]string, len(businessColumns))
	for i, col := range businessColumns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	n := len(businessColumns) + 1
	return fmt.Sprintf(`
		UPDATE calificaciones SET %s, origen = $%d, usuario_modificador = NULLIF($%d, '')::uuid, updated_at = $%d
		WHERE id = $1`, strings.Join(sets, ", "), n+1, n+2, n+3)
}()

// Update reemplaza los campos de negocio, el origen y el modificador. Creador y created_at no cambian.
func (r *CalificacionRepo) Update(ctx context.Context, c *entity.Calificacion) error {
	args := append([]any{c.ID}, businessArgs(c)...)
	args = append(args, c.Origen, c.UsuarioModificador, c.UpdatedAt)

	cmd, err := r.q.Exec(ctx, updateSQL, args...)
	if err != nil {
		return mapWriteError("update calificacion", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una calificación (borrado físico).
func (r *CalificacionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM calificaciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete calificacion: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve calificaciones con la subsidiaria y el email del creador, las más recientes
// por inicio de periodo primero (las de factores, sin periodo, al final).
func (r *CalificacionRepo) List(ctx context.Context, limit, offset int) ([]repository.CalificacionListItem, error) {
	query := `
		SELECT ` + selectColumns + `, s.nombre_legal, s.identificacion_fiscal, COALESCE(u.email, '')
		FROM calificaciones c
		JOIN subsidiarias s ON s.id = c.subsidiaria_id
		LEFT JOIN users u ON u.id = c.usuario_creador
		ORDER BY c.fecha_inicio_periodo DESC NULLS LAST, c.fecha_pago DESC NULLS LAST, c.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list calificaciones: %w", err)
	}
	defer rows.Close()

	var list []repository.CalificacionListItem
	for rows.Next() {
		var c entity.Calificacion
		item := repository.CalificacionListItem{Calificacion: &c}
		dest := append(scanDest(&c), &item.SubsidiariaName, &item.SubsidiariaRUT, &item.CreadorEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan calificacion: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Count total de calificaciones.
func (r *CalificacionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM calificaciones`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count calificaciones: %w", err)
	}
	return n, nil
}

// CountCreatedSince calificaciones creadas desde since.
func (r *CalificacionRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM calificaciones WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count calificaciones since: %w", err)
	}
	return n, nil
}

// ── Carga masiva ─────────────────────────────────────────────────────────────

// upsertSpec describe la sentencia de una llave única: columnas de la llave y columnas que
// la carga escribe, con sus valores.
type upsertSpec struct {
	keyColumns   []string
	valueColumns []string
	values       func(c *entity.Calificacion) []any
}

var (
	factorUpsert = upsertSpec{
		keyColumns:   []string{"subsidiaria_id", "ejercicio", "instrumento", "fecha_pago", "secuencia", "numero_dividendo"},
		valueColumns: append([]string{"mercado", "tipo_sociedad", "valor_historico"}, factorColumns...),
		values: func(c *entity.Calificacion) []any {
			args := []any{c.Mercado, c.TipoSociedad, c.ValorHistorico}
			for _, f := range c.Factores {
				args = append(args, f)
			}
			return args
		},
	}
	montoUpsert = upsertSpec{
		keyColumns:   []string{"subsidiaria_id", "fecha_inicio_periodo"},
		valueColumns: []string{"fecha_fin_periodo", "monto_impuesto", "estado"},
		values: func(c *entity.Calificacion) []any {
			return []any{c.FechaFinPeriodo, c.MontoImpuesto, c.Estado}
		},
	}
)

func keyArgs(key entity.ClaveUnica) (upsertSpec, []any, error) {
	switch k := key.(type) {
	case entity.ClaveFactor:
		return factorUpsert, []any{k.SubsidiariaID, k.Ejercicio, k.Instrumento, k.FechaPago, k.Secuencia, k.NumeroDividendo}, nil
	case entity.ClaveMonto:
		return montoUpsert, []any{k.SubsidiariaID, k.FechaInicioPeriodo}, nil
	default:
		return upsertSpec{}, nil, fmt.Errorf("clave de calificación no soportada: %T", key)
	}
}

// FindCreador bloquea la fila de la llave (SELECT FOR UPDATE) y devuelve su creador.
func (r *CalificacionRepo) FindCreador(ctx context.Context, key entity.ClaveUnica) (string, bool, error) {
	spec, args, err := keyArgs(key)
	if err != nil {
		return "", false, err
	}
	conds := make([]string, len(spec.keyColumns))
	for i, col := range spec.keyColumns {
		conds[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	query := `
		SELECT COALESCE(usuario_creador::text, '') FROM calificaciones
		WHERE ` + strings.Join(conds, " AND ") + `
		FOR UPDATE`

	var creador string
	if err := r.q.QueryRow(ctx, query, args...).Scan(&creador); err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find creador %s: %w", key, err)
	}
	return creador, true, nil
}

// Upsert INSERT ... ON CONFLICT sobre el índice único de la llave. La rama de actualización
// nunca toca usuario_creador ni created_at; created viene de xmax = 0 (fila recién insertada).
func (r *CalificacionRepo) Upsert(ctx context.Context, key entity.ClaveUnica, c *entity.Calificacion) (bool, error) {
	spec, args, err := keyArgs(key)
	if err != nil {
		return false, err
	}
	args = append(args, spec.values(c)...)
	n := len(args)
	args = append(args, c.ID, c.Origen, c.UsuarioCreador, c.UsuarioModificador, c.CreatedAt, c.UpdatedAt)

	cols := append(append([]string{}, spec.keyColumns...), spec.valueColumns...)
	sets := make([]string, 0, len(spec.valueColumns)+3)
	for _, col := range spec.valueColumns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	sets = append(sets,
		"origen = EXCLUDED.origen",
		"usuario_modificador = EXCLUDED.usuario_modificador",
		"updated_at = EXCLUDED.updated_at",
	)
	query := fmt.Sprintf(`
		INSERT INTO calificaciones (%s, id, origen, usuario_creador, usuario_modificador, created_at, updated_at)
		VALUES (%s, $%d, $%d, NULLIF($%d, '')::uuid, NULLIF($%d, '')::uuid, $%d, $%d)
		ON CONFLICT (%s) DO UPDATE SET %s
		RETURNING id, created_at, (xmax = 0) AS created`,
		strings.Join(cols, ", "), placeholders(1, n), n+1, n+2, n+3, n+4, n+5, n+6,
		strings.Join(spec.keyColumns, ", "), strings.Join(sets, ", "))

	var created bool
	if err := r.q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &created); err != nil {
		return false, mapWriteError("upsert calificacion", err)
	}
	return created, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
