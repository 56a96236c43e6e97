// seed_subsidiarias genera un script SQL idempotente para poblar la tabla subsidiarias
// a partir de una planilla exportada por el área contable (CSV ";" en ISO-8859-1, o Excel).
//
// Columnas esperadas: Nombre Legal; Identificacion Fiscal; Pais (opcional).
//
// Uso: go run ./cmd/seed_subsidiarias [ruta/subsidiarias.csv] [salida.sql]
// Por defecto lee subsidiarias.csv y escribe en stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/infrastructure/spreadsheet"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/rut"
)

// namespaceSubsidiarias base de los UUID v5: el mismo RUT produce siempre el mismo id.
var namespaceSubsidiarias = uuid.NewSHA1(uuid.NameSpaceOID, []byte("calificacion-tributaria/subsidiarias"))

var manifest = planilla.NewManifest("Nombre Legal", "Identificacion Fiscal")

type subsidiaria struct {
	id, nombre, rut, pais string
}

func main() {
	inPath := "subsidiarias.csv"
	if len(os.Args) > 1 {
		inPath = os.Args[1]
	}
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir planilla: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	codec := spreadsheet.NewCodec(spreadsheet.CSVOptions{Charset: spreadsheet.CharsetLatin1})
	tbl, err := codec.Decode(inPath, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer planilla: %v\n", err)
		os.Exit(1)
	}
	if err := manifest.Validate(tbl); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	subs, rechazadas := parse(tbl)
	for _, r := range rechazadas {
		fmt.Fprintln(os.Stderr, r)
	}

	var out io.Writer = os.Stdout
	if len(os.Args) > 2 {
		file, err := os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	writeSQL(out, subs)
	fmt.Fprintf(os.Stderr, "Generadas %d subsidiarias (%d filas rechazadas)\n", len(subs), len(rechazadas))
}

// parse valida RUT y nombre de cada fila; un RUT repetido conserva la última fila.
func parse(tbl *planilla.Table) ([]subsidiaria, []string) {
	var rechazadas []string
	index := make(map[string]int)
	var subs []subsidiaria
	for _, row := range tbl.Rows {
		nombre := row.Text("NOMBRE_LEGAL")
		raw := row.Text("IDENTIFICACION_FISCAL")
		if nombre == "" {
			rechazadas = append(rechazadas, fmt.Sprintf("Fila %d: nombre legal vacío", row.Number))
			continue
		}
		if err := rut.Validate(raw); err != nil {
			rechazadas = append(rechazadas, fmt.Sprintf("Fila %d: RUT %q inválido: %v", row.Number, raw, err))
			continue
		}
		pais := row.Text("PAIS")
		if pais == "" {
			pais = "Chile"
		}
		s := subsidiaria{nombre: nombre, rut: rut.Format(raw), pais: pais}
		s.id = uuid.NewSHA1(namespaceSubsidiarias, []byte(s.rut)).String()
		if i, ok := index[s.rut]; ok {
			subs[i] = s
			continue
		}
		index[s.rut] = len(subs)
		subs = append(subs, s)
	}
	return subs, rechazadas
}

func writeSQL(w io.Writer, subs []subsidiaria) {
	fmt.Fprintln(w, "-- Subsidiarias del holding")
	fmt.Fprintln(w, "-- Generado por cmd/seed_subsidiarias")
	fmt.Fprintln(w)
	if len(subs) == 0 {
		return
	}
	fmt.Fprintln(w, "INSERT INTO subsidiarias (id, nombre_legal, identificacion_fiscal, pais) VALUES")
	for i, s := range subs {
		sep := ","
		if i == len(subs)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  ('%s', '%s', '%s', '%s')%s\n", s.id, escapeSQL(s.nombre), s.rut, escapeSQL(s.pais), sep)
	}
	fmt.Fprintln(w, "ON CONFLICT (identificacion_fiscal) DO UPDATE SET nombre_legal = EXCLUDED.nombre_legal, pais = EXCLUDED.pais, updated_at = now();")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
