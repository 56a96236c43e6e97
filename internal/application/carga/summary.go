package carga

import (
	"fmt"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
)

// Niveles de los mensajes para el usuario.
const (
	NivelExito       = "success"
	NivelAdvertencia = "warning"
	NivelError       = "error"
)

// maxErroresMostrados fallas listadas una a una en los mensajes; el resto se resume.
const maxErroresMostrados = 5

// RowResult resultado explícito del procesamiento de una fila.
type RowResult struct {
	Row     int
	Created bool
	Err     error
}

// RowFailure fila rechazada con su mensaje.
type RowFailure struct {
	Row     int
	Message string
}

// Mensaje texto para mostrar al usuario con su nivel.
type Mensaje struct {
	Nivel string
	Texto string
}

// Summary resultado de una carga que llegó a procesar filas.
type Summary struct {
	Tipo    string
	Archivo string
	Created int
	Updated int
	Failed  []RowFailure
}

// Add acumula el resultado de una fila.
func (s *Summary) Add(r RowResult) {
	switch {
	case r.Err != nil:
		s.Failed = append(s.Failed, RowFailure{Row: r.Row, Message: r.Err.Error()})
	case r.Created:
		s.Created++
	default:
		s.Updated++
	}
}

// Processed cantidad de filas escritas.
func (s *Summary) Processed() int { return s.Created + s.Updated }

// Mensajes arma los mensajes para el usuario: éxito si hubo escrituras, y las primeras
// fallas (advertencia si hubo escrituras, error si no) con el resto resumido.
func (s *Summary) Mensajes() []Mensaje {
	var out []Mensaje
	if s.Processed() > 0 {
		out = append(out, Mensaje{
			Nivel: NivelExito,
			Texto: fmt.Sprintf("El archivo %q fue cargado: %d creados, %d actualizados.", s.Archivo, s.Created, s.Updated),
		})
	}
	if len(s.Failed) == 0 {
		if s.Processed() == 0 {
			out = append(out, Mensaje{Nivel: NivelAdvertencia, Texto: "El archivo no contiene registros para procesar."})
		}
		return out
	}

	nivel := NivelAdvertencia
	if s.Processed() == 0 {
		nivel = NivelError
	}
	out = append(out, Mensaje{Nivel: nivel, Texto: fmt.Sprintf("Se encontraron %d errores.", len(s.Failed))})
	for i, f := range s.Failed {
		if i == maxErroresMostrados {
			out = append(out, Mensaje{
				Nivel: nivel,
				Texto: fmt.Sprintf("...y %d errores más.", len(s.Failed)-maxErroresMostrados),
			})
			break
		}
		out = append(out, Mensaje{
			Nivel: nivel,
			Texto: fmt.Sprintf("Fila %d: %s. El registro no fue creado/actualizado.", f.Row, f.Message),
		})
	}
	return out
}

// Response convierte el resumen al cuerpo JSON de la API.
func (s *Summary) Response() dto.CargaResponse {
	out := dto.CargaResponse{
		Tipo:     s.Tipo,
		Archivo:  s.Archivo,
		Created:  s.Created,
		Updated:  s.Updated,
		Failed:   make([]dto.CargaFailure, 0, len(s.Failed)),
		Messages: []dto.CargaMessage{},
	}
	for _, f := range s.Failed {
		out.Failed = append(out.Failed, dto.CargaFailure{Row: f.Row, Message: f.Message})
	}
	for _, m := range s.Mensajes() {
		out.Messages = append(out.Messages, dto.CargaMessage{Level: m.Nivel, Text: m.Texto})
	}
	return out
}
