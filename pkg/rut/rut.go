// Package rut valida y normaliza el Rol Único Tributario chileno (identificación fiscal de las
// subsidiarias).
package rut

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize quita puntos y espacios y deja la K del dígito verificador en mayúscula.
// "76.000.000-k " → "76000000-K". No valida.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r == '.' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ComputeCheckDigit calcula el dígito verificador (módulo 11, pesos 2..7 de derecha a izquierda).
func ComputeCheckDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("rut: %q contiene caracteres no numéricos", body)
		}
		sum += int(c-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}

// Validate acepta "76000000-0", "76.000.000-0" o "760000000"; falla si el dígito no corresponde.
func Validate(s string) error {
	n := strings.ReplaceAll(Normalize(s), "-", "")
	if len(n) < 2 {
		return fmt.Errorf("rut: %q es demasiado corto", s)
	}
	if len(n) > 9 {
		return fmt.Errorf("rut: %q tiene más de 9 caracteres", s)
	}
	body, dv := n[:len(n)-1], n[len(n)-1]
	expected, err := ComputeCheckDigit(body)
	if err != nil {
		return err
	}
	if dv != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// Format devuelve la forma canónica "cuerpo-DV" ("760000000" → "76000000-0").
func Format(s string) string {
	n := strings.ReplaceAll(Normalize(s), "-", "")
	if len(n) < 2 {
		return n
	}
	return n[:len(n)-1] + "-" + n[len(n)-1:]
}
