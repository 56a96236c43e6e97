package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidFiscalID    = errors.New("identificación fiscal inválida")
)

// ── Errores de carga masiva que abortan el lote completo ─────────────────────

// ErrUnsupportedFormat el archivo no es CSV ni Excel.
var ErrUnsupportedFormat = errors.New("formato de archivo no soportado. Use CSV o Excel")

// DecodeError el archivo no pudo leerse (corrupto, codificación incorrecta, etc.).
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error al leer el archivo: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// MissingColumnsError lista todas las columnas requeridas ausentes (forma legible).
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "faltan las siguientes columnas requeridas: " + strings.Join(e.Columns, ", ")
}

// FactorSumExceededError una o más filas superan la suma permitida de factores.
// Rows contiene como máximo 5 números de fila de ejemplo.
type FactorSumExceededError struct {
	Count int
	Rows  []int
}

func (e *FactorSumExceededError) Error() string {
	rows := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		rows = append(rows, fmt.Sprintf("%d", r))
	}
	return fmt.Sprintf("validación fallida: %d registros tienen una suma de Factores 8 al 19 mayor que 1 (filas: %s)",
		e.Count, strings.Join(rows, ", "))
}

// ── Errores acotados a una fila (se acumulan, no abortan el lote) ────────────

// SubsidiaryNotFoundError el ID fiscal de la fila no corresponde a ninguna subsidiaria.
type SubsidiaryNotFoundError struct {
	FiscalID string
}

func (e *SubsidiaryNotFoundError) Error() string {
	return fmt.Sprintf("el ID Fiscal %s de la empresa no existe", e.FiscalID)
}

// RowFormatError un campo de la fila no pudo convertirse (fecha, número, entero).
type RowFormatError struct {
	Row    int
	Detail string
}

func (e *RowFormatError) Error() string {
	return fmt.Sprintf("error de formato de dato: %s", e.Detail)
}

// UnknownRowError cualquier otro fallo al procesar la fila (incluye errores de integridad de BD).
type UnknownRowError struct {
	Cause error
}

func (e *UnknownRowError) Error() string {
	return fmt.Sprintf("error desconocido en el procesamiento del registro: %v", e.Cause)
}

func (e *UnknownRowError) Unwrap() error { return e.Cause }

// IsBatchError informa si err aborta el lote completo (antes de cualquier escritura).
func IsBatchError(err error) bool {
	var de *DecodeError
	var mc *MissingColumnsError
	var fs *FactorSumExceededError
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.As(err, &de) || errors.As(err, &mc) || errors.As(err, &fs)
}
