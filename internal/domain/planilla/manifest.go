package planilla

import "github.com/Marton-art/proyecto-integrado.ignore/internal/domain"

// Manifest lista ordenada de columnas requeridas, en forma legible.
// Es la misma lista que se publica como encabezado en las plantillas de carga.
type Manifest struct {
	columns []string
}

// NewManifest construye el manifiesto con las columnas en el orden dado.
func NewManifest(columns ...string) Manifest {
	return Manifest{columns: append([]string(nil), columns...)}
}

// Columns devuelve las columnas en forma legible.
func (m Manifest) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Keys devuelve las columnas en forma canónica.
func (m Manifest) Keys() []string {
	keys := make([]string, len(m.columns))
	for i, c := range m.columns {
		keys[i] = Canonicalize(c)
	}
	return keys
}

// Validate revisa el encabezado completo una sola vez y reporta todas las columnas ausentes.
func (m Manifest) Validate(t *Table) error {
	var missing []string
	for _, c := range m.columns {
		if !t.Has(Canonicalize(c)) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingColumnsError{Columns: missing}
	}
	return nil
}
