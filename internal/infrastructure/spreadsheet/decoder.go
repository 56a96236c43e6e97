// Package spreadsheet decodifica archivos de carga (CSV, XLSX, XLS) a planilla.Table y genera
// las plantillas de descarga en los mismos formatos.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
)

// Charsets soportados para CSV.
const (
	CharsetUTF8    = "utf-8"
	CharsetLatin1  = "latin1"
	CharsetWin1252 = "windows-1252"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// CSVOptions convención de los archivos de texto.
type CSVOptions struct {
	Delimiter   rune
	DecimalMark rune
	Charset     string
}

// DefaultCSVOptions exportación regional: "0,25" separado por ";" en UTF-8.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ';', DecimalMark: ',', Charset: CharsetUTF8}
}

func (o CSVOptions) withDefaults() CSVOptions {
	def := DefaultCSVOptions()
	if o.Delimiter == 0 {
		o.Delimiter = def.Delimiter
	}
	if o.DecimalMark == 0 {
		o.DecimalMark = def.DecimalMark
	}
	if o.Charset == "" {
		o.Charset = def.Charset
	}
	return o
}

// charmapFor devuelve el codificador de 8 bits del charset; nil para UTF-8.
func charmapFor(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// Codec lee los archivos de carga según su extensión y escribe las plantillas.
type Codec struct {
	csv CSVOptions
}

// NewCodec crea el lector/escritor con la convención CSV indicada.
func NewCodec(opts CSVOptions) *Codec {
	return &Codec{csv: opts.withDefaults()}
}

// CSVOptions devuelve la convención efectiva de los archivos de texto.
func (d *Codec) CSVOptions() CSVOptions { return d.csv }

// Decode lee el archivo completo y devuelve la tabla normalizada.
// Extensión desconocida → domain.ErrUnsupportedFormat; archivo ilegible → *domain.DecodeError.
func (d *Codec) Decode(filename string, r io.Reader) (*planilla.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".xlsx", ".xls":
	default:
		return nil, domain.ErrUnsupportedFormat
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.DecodeError{Cause: err}
	}

	var (
		records [][]string
		opts    planilla.Options
	)
	switch ext {
	case ".csv":
		records, err = d.readCSV(data)
		opts.Format = planilla.NumberFormat{Decimal: d.csv.DecimalMark}
	case ".xlsx":
		records, opts.SerialDate, err = readXLSX(data)
		opts.Format = planilla.FormatoPunto
	case ".xls":
		records, err = readXLS(data)
		opts.Format = planilla.FormatoPunto
		opts.SerialDate = serialDate
	}
	if err != nil {
		return nil, &domain.DecodeError{Cause: err}
	}
	if len(records) == 0 {
		return nil, &domain.DecodeError{Cause: errors.New("el archivo está vacío")}
	}
	return planilla.NewTable(records[0], records[1:], opts), nil
}

func (d *Codec) readCSV(data []byte) ([][]string, error) {
	enc, err := charmapFor(d.csv.Charset)
	if err != nil {
		return nil, err
	}
	var src io.Reader
	if enc == nil {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return nil, errors.New("el archivo no está codificado en UTF-8")
		}
		src = bytes.NewReader(data)
	} else {
		src = transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.Comma = d.csv.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	return records, nil
}

// readXLSX lee la primera hoja con valores crudos (números con punto, fechas como serial).
func readXLSX(data []byte) ([][]string, planilla.SerialDateFunc, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("abrir libro xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("el libro no contiene hojas")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	serial := func(v float64) (time.Time, error) {
		return excelize.ExcelDateToTime(v, date1904)
	}
	return rows, serial, nil
}

// readXLS lee la primera hoja de un libro Excel 97-2003.
// El lector de BIFF entra en pánico ante archivos truncados; se convierte en error.
func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("libro xls inválido: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("abrir libro xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("el libro no contiene hojas")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("no se pudo leer la primera hoja")
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// serialDate convierte seriales de fecha en libros .xls (sistema 1900).
func serialDate(v float64) (time.Time, error) {
	return excelize.ExcelDateToTime(v, false)
}
