package carga_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/carga"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/infrastructure/spreadsheet"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/logger"
)

const (
	usuarioA = "user-a"
	usuarioB = "user-b"
)

var (
	subAcme  = &entity.Subsidiaria{ID: "sub-1", NombreLegal: "Acme SpA", IdentificacionFiscal: "76000000-0"}
	subBeta  = &entity.Subsidiaria{ID: "sub-2", NombreLegal: "Beta Ltda", IdentificacionFiscal: "11111111-1"}
	montoHdr = "ID Fiscal Empresa;Fecha Inicio;Fecha Fin;Monto Impuesto;Estado"
)

func newService(finder *fakeFinder, store *fakeStore) *carga.Service {
	codec := spreadsheet.NewCodec(spreadsheet.DefaultCSVOptions())
	return carga.NewService(codec, codec, finder, store, logger.Nop())
}

func factorHeader() string {
	return strings.Join(carga.FactorPipeline().Manifest.Columns(), ";")
}

// factorLine fila de factores con Factor 8 = f8, Factor 9 = f9 y el resto vacío.
func factorLine(fiscalID, instrumento, f8, f9 string) string {
	return factorRow(fiscalID, instrumento, "1", "1000,5", f8, f9)
}

func factorRow(fiscalID, instrumento, dividendo, valor, f8, f9 string) string {
	cells := []string{fiscalID, "2024", "Acciones", instrumento, "15-05-2024", "1", dividendo, "Abierta", valor, f8, f9}
	for n := 10; n <= entity.FactorMax; n++ {
		cells = append(cells, "")
	}
	return strings.Join(cells, ";")
}

func claveFactor(instrumento string, dividendo int) entity.ClaveFactor {
	return entity.ClaveFactor{
		SubsidiariaID:   "sub-1",
		Ejercicio:       2024,
		Instrumento:     instrumento,
		FechaPago:       time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		Secuencia:       1,
		NumeroDividendo: dividendo,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla de suma de factores
// ──────────────────────────────────────────────────────────────────────────────

func TestImportFactor_SumaExactamenteUnoSeAcepta(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportFactor(context.Background(), "factores.csv", csvFile(
		factorHeader(),
		factorLine("76000000-0", "ACME", "0,5", "0,5"),
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Empty(t, summary.Failed)

	rec := store.only()
	require.NotNil(t, rec)
	assert.Equal(t, entity.OrigenCargaMasivaFactor, rec.Origen)
	assert.Equal(t, "sub-1", rec.SubsidiariaID)
	assert.True(t, decimal.RequireFromString("0.5").Equal(rec.Factor(8).Decimal))
	assert.False(t, rec.Factor(10).Valid, "las celdas vacías quedan nulas")
	assert.True(t, decimal.RequireFromString("1000.5").Equal(rec.ValorHistorico.Decimal))
	require.NotNil(t, rec.FechaPago)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), *rec.FechaPago)
}

func TestImportFactor_SumaSobreToleranciaRechazaElLoteSinEscribir(t *testing.T) {
	store := newFakeStore()
	finder := newFakeFinder(subAcme)
	svc := newService(finder, store)

	summary, err := svc.ImportFactor(context.Background(), "factores.csv", csvFile(
		factorHeader(),
		factorLine("76000000-0", "OK", "0,2", "0,2"),
		factorLine("76000000-0", "MAL", "0,5", "0,50000002"),
	), usuarioA)

	require.Error(t, err)
	assert.Nil(t, summary)
	var fs *domain.FactorSumExceededError
	require.True(t, errors.As(err, &fs))
	assert.Equal(t, 1, fs.Count)
	assert.Equal(t, []int{3}, fs.Rows)
	assert.Zero(t, store.writes, "ninguna fila debe escribirse, tampoco las válidas")
	assert.Zero(t, finder.calls)
}

func TestImportFactor_FactorNoNumericoSumaCeroPeroLaFilaFalla(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportFactor(context.Background(), "factores.csv", csvFile(
		factorHeader(),
		factorLine("76000000-0", "A", "abc", "0,9"),
		factorLine("76000000-0", "B", "0,1", "0,1"),
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, 2, summary.Failed[0].Row)
	assert.Contains(t, summary.Failed[0].Message, "formato")
}

// Con coma decimal, "0.500" no es separador de miles: la fila falla y no se guarda 500.
func TestImportFactor_PuntoDecimalConConvencionComaFallaLaFila(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportFactor(context.Background(), "factores.csv", csvFile(
		factorHeader(),
		factorRow("76000000-0", "A", "1", "0.500", "0,5", "0,5"),
		factorRow("76000000-0", "B", "1", "1000", "0.125", "0,5"),
		factorRow("76000000-0", "C", "1", "1.000,5", "0,5", "0,5"),
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	require.Len(t, summary.Failed, 2)
	assert.Equal(t, 2, summary.Failed[0].Row)
	assert.Equal(t, 3, summary.Failed[1].Row)
	require.Len(t, store.byKey, 1)
	rec := store.byKey[claveFactor("C", 1)]
	require.NotNil(t, rec)
	assert.True(t, decimal.RequireFromString("1000.5").Equal(rec.ValorHistorico.Decimal))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de columnas
// ──────────────────────────────────────────────────────────────────────────────

func TestImportMonto_ColumnaFaltanteSeNombraExactamente(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	_, err := svc.ImportMonto(context.Background(), "montos.csv", csvFile(
		"ID Fiscal Empresa;Fecha Inicio;Fecha Fin;Estado",
		"76000000-0;01-01-2024;31-12-2024;Vigente",
	), usuarioA)

	var mc *domain.MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"Monto Impuesto"}, mc.Columns)
	assert.Zero(t, store.writes)
}

func TestImport_FormatoNoSoportado(t *testing.T) {
	svc := newService(newFakeFinder(), newFakeStore())

	_, err := svc.ImportMonto(context.Background(), "montos.pdf", strings.NewReader("x"), usuarioA)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestImport_TipoDesconocido(t *testing.T) {
	svc := newService(newFakeFinder(), newFakeStore())

	_, err := svc.Import(context.Background(), "otro", "a.csv", strings.NewReader("a\n"), usuarioA)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestImportMonto_Idempotente(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme, subBeta), store)
	lines := []string{
		montoHdr,
		"76000000-0;01-01-2024;31-12-2024;1.500,25;Vigente",
		"11111111-1;01-01-2024;31-12-2024;300;Vigente",
	}

	first, err := svc.ImportMonto(context.Background(), "montos.csv", csvFile(lines...), usuarioA)
	require.NoError(t, err)
	second, err := svc.ImportMonto(context.Background(), "montos.csv", csvFile(lines...), usuarioA)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Len(t, store.byKey, 2)

	key := entity.ClaveMonto{SubsidiariaID: "sub-1", FechaInicioPeriodo: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rec := store.byKey[key]
	require.NotNil(t, rec)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(rec.MontoImpuesto.Decimal))
	assert.Equal(t, "Vigente", rec.Estado)
	assert.Equal(t, entity.OrigenCargaMasivaMonto, rec.Origen)
}

func TestImportMonto_ConservaCreadorYActualizaModificador(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	_, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(montoHdr, "76000000-0;01-01-2024;31-12-2024;100;Vigente"), usuarioA)
	require.NoError(t, err)
	summary, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(montoHdr, "76000000-0;01-01-2024;31-12-2024;200;Cerrado"), usuarioB)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Updated)
	rec := store.only()
	assert.Equal(t, usuarioA, rec.UsuarioCreador)
	assert.Equal(t, usuarioB, rec.UsuarioModificador)
	assert.Equal(t, "Cerrado", rec.Estado)
}

func TestImportMonto_MismaLlaveDosVecesGanaLaUltima(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(
		montoHdr,
		"76000000-0;01-01-2024;31-12-2024;100;Borrador",
		"76000000-0;01-01-2024;31-12-2024;999;Vigente",
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	rec := store.only()
	assert.True(t, decimal.NewFromInt(999).Equal(rec.MontoImpuesto.Decimal))
	assert.Equal(t, "Vigente", rec.Estado)
}

func TestImportFactor_Idempotente(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)
	lines := []string{
		factorHeader(),
		factorLine("76000000-0", "ACME", "0,5", "0,5"),
		factorLine("76000000-0", "BETA", "0,25", "0,25"),
	}

	first, err := svc.ImportFactor(context.Background(), "f.csv", csvFile(lines...), usuarioA)
	require.NoError(t, err)
	second, err := svc.ImportFactor(context.Background(), "f.csv", csvFile(lines...), usuarioA)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Len(t, store.byKey, 2)
}

func TestImportFactor_ConservaCreadorYActualizaModificador(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	_, err := svc.ImportFactor(context.Background(), "f.csv", csvFile(
		factorHeader(),
		factorLine("76000000-0", "ACME", "0,5", "0,5"),
		factorLine("76000000-0", "BETA", "0,5", "0,5"),
	), usuarioA)
	require.NoError(t, err)
	summary, err := svc.ImportFactor(context.Background(), "f.csv", csvFile(
		factorHeader(),
		factorLine("76000000-0", "ACME", "0,1", "0,2"),
		factorLine("76000000-0", "BETA", "0,3", "0,4"),
	), usuarioB)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Updated)
	for _, instrumento := range []string{"ACME", "BETA"} {
		rec := store.byKey[claveFactor(instrumento, 1)]
		require.NotNil(t, rec, instrumento)
		assert.Equal(t, usuarioA, rec.UsuarioCreador, instrumento)
		assert.Equal(t, usuarioB, rec.UsuarioModificador, instrumento)
	}
	assert.True(t, decimal.RequireFromString("0.1").Equal(store.byKey[claveFactor("ACME", 1)].Factor(8).Decimal))
}

func TestImportFactor_NumeroDeDividendoDistintoCreaDosRegistros(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportFactor(context.Background(), "f.csv", csvFile(
		factorHeader(),
		factorRow("76000000-0", "ACME", "1", "1000", "0,5", "0,5"),
		factorRow("76000000-0", "ACME", "2", "2000", "0,5", "0,5"),
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	require.Len(t, store.byKey, 2)
	assert.True(t, decimal.NewFromInt(1000).Equal(store.byKey[claveFactor("ACME", 1)].ValorHistorico.Decimal))
	assert.True(t, decimal.NewFromInt(2000).Equal(store.byKey[claveFactor("ACME", 2)].ValorHistorico.Decimal))
}

func TestImportFactor_MismaLlaveDosVecesGanaLaUltima(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportFactor(context.Background(), "f.csv", csvFile(
		factorHeader(),
		factorRow("76000000-0", "ACME", "1", "1000", "0,5", "0,5"),
		factorRow("76000000-0", "ACME", "1", "3000", "0,2", "0,3"),
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	rec := store.only()
	assert.True(t, decimal.NewFromInt(3000).Equal(rec.ValorHistorico.Decimal))
	assert.True(t, decimal.RequireFromString("0.3").Equal(rec.Factor(9).Decimal))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de subsidiarias y errores por fila
// ──────────────────────────────────────────────────────────────────────────────

func TestImportMonto_SubsidiariaInexistenteNoDetieneElLote(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme, subBeta), store)

	summary, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(
		montoHdr,
		"76000000-0;01-01-2024;31-12-2024;100;Vigente",
		"99999999-9;01-01-2024;31-12-2024;100;Vigente",
		"11111111-1;01-01-2024;31-12-2024;100;Vigente",
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, 3, summary.Failed[0].Row)
	assert.Contains(t, summary.Failed[0].Message, "99999999-9")
}

func TestImportMonto_IDFiscalConSufijoDecimalResuelveIgual(t *testing.T) {
	store := newFakeStore()
	finder := newFakeFinder(subAcme)
	svc := newService(finder, store)

	summary, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(
		montoHdr,
		"76000000-0;01-01-2024;31-12-2024;100;Vigente",
		" 76000000-0.0 ;01-01-2024;31-12-2024;200;Vigente",
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	assert.Empty(t, summary.Failed)
	assert.Equal(t, 1, finder.calls, "el ID fiscal repetido se resuelve una sola vez por lote")
}

func TestImportMonto_ErrorDeFormatoPorFila(t *testing.T) {
	store := newFakeStore()
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(
		montoHdr,
		"76000000-0;31/02/2024;31-12-2024;100;Vigente",
		"76000000-0;01-03-2024;31-12-2024;1.2.3;Vigente",
		"76000000-0;01-04-2024;31-12-2024;50;Vigente",
	), usuarioA)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	require.Len(t, summary.Failed, 2)
	assert.Equal(t, 2, summary.Failed[0].Row)
	assert.Equal(t, 3, summary.Failed[1].Row)
}

func TestImportMonto_ErrorDeBDQuedaEnLaFila(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = errors.New("violates check constraint")
	svc := newService(newFakeFinder(subAcme), store)

	summary, err := svc.ImportMonto(context.Background(), "m.csv", csvFile(
		montoHdr, "76000000-0;01-01-2024;31-12-2024;100;Vigente",
	), usuarioA)

	require.NoError(t, err)
	require.Len(t, summary.Failed, 1)
	assert.Contains(t, summary.Failed[0].Message, "error desconocido")
	assert.Contains(t, summary.Failed[0].Message, "check constraint")
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas
// ──────────────────────────────────────────────────────────────────────────────

func TestPlantilla_SeImportaSinErrores(t *testing.T) {
	for _, tipo := range []string{carga.TipoFactor, carga.TipoMonto} {
		for _, formato := range []string{carga.FormatoCSV, carga.FormatoXLSX} {
			t.Run(tipo+"_"+formato, func(t *testing.T) {
				store := newFakeStore()
				svc := newService(newFakeFinder(subAcme), store)
				var buf bytes.Buffer

				filename, err := svc.Plantilla(&buf, tipo, formato)
				require.NoError(t, err)
				assert.True(t, strings.HasSuffix(filename, "."+formato))

				summary, err := svc.Import(context.Background(), tipo, filename, &buf, usuarioA)
				require.NoError(t, err)
				assert.Equal(t, 1, summary.Created)
				assert.Empty(t, summary.Failed)
			})
		}
	}
}

func TestPlantilla_FormatoDesconocido(t *testing.T) {
	svc := newService(newFakeFinder(), newFakeStore())

	_, err := svc.Plantilla(&bytes.Buffer{}, carga.TipoMonto, "ods")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
