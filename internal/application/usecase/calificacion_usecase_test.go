package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/usecase"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
)

var subAcme = &entity.Subsidiaria{ID: "sub-1", NombreLegal: "Inversiones Acme SpA", IdentificacionFiscal: "76000000-0"}

type fakePDF struct {
	items []dto.CalificacionResponse
}

func (f *fakePDF) GenerateCalificacionesPDF(_ context.Context, items []dto.CalificacionResponse, _ time.Time) ([]byte, error) {
	f.items = items
	return []byte("%PDF-1.3"), nil
}

func newCalificacionUC() (*usecase.CalificacionUseCase, *memCalificaciones, *fakePDF) {
	subs := newMemSubsidiarias(subAcme)
	repo := newMemCalificaciones(subs)
	pdf := &fakePDF{}
	return usecase.NewCalificacionUseCase(repo, subs, pdf), repo, pdf
}

func montoRequest(monto string) dto.CalificacionRequest {
	m := decimal.RequireFromString(monto)
	return dto.CalificacionRequest{
		SubsidiariaID:      subAcme.ID,
		FechaInicioPeriodo: "2024-01-01",
		FechaFinPeriodo:    "2024-12-31",
		MontoImpuesto:      &m,
		Estado:             "Vigente",
	}
}

func TestCalificacion_CreateManual(t *testing.T) {
	uc, repo, _ := newCalificacionUC()

	out, err := uc.Create(context.Background(), "user-1", montoRequest("125000.75"))

	require.NoError(t, err)
	assert.Equal(t, entity.OrigenManual, out.Origen)
	assert.Equal(t, "user-1", out.UsuarioCreador)
	assert.Equal(t, "user-1", out.UsuarioModificador)
	assert.Equal(t, subAcme.NombreLegal, out.SubsidiariaNombre)
	require.NotNil(t, out.MontoImpuesto)
	assert.True(t, decimal.RequireFromString("125000.75").Equal(*out.MontoImpuesto))
	assert.Len(t, repo.byID, 1)
}

func TestCalificacion_UpdateConservaCreador(t *testing.T) {
	uc, _, _ := newCalificacionUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, "user-1", montoRequest("100"))
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, "user-2", montoRequest("200"))

	require.NoError(t, err)
	assert.Equal(t, "user-1", out.UsuarioCreador)
	assert.Equal(t, "user-2", out.UsuarioModificador)
	assert.Equal(t, created.CreatedAt, out.CreatedAt)
	assert.True(t, decimal.NewFromInt(200).Equal(*out.MontoImpuesto))

	_, err = uc.Update(ctx, "no-existe", "user-2", montoRequest("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una carga masiva editada a mano pasa a origen Manual, también al volver a leerla.
func TestCalificacion_UpdateDeCargaMasivaPasaAManual(t *testing.T) {
	uc, repo, _ := newCalificacionUC()
	ctx := context.Background()
	inicio := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.Calificacion{
		ID:                 "cal-1",
		SubsidiariaID:      subAcme.ID,
		FechaInicioPeriodo: &inicio,
		Origen:             entity.OrigenCargaMasivaMonto,
		UsuarioCreador:     "user-1",
		UsuarioModificador: "user-1",
	}))

	out, err := uc.Update(ctx, "cal-1", "user-2", montoRequest("300"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrigenManual, out.Origen)

	stored, err := uc.GetByID(ctx, "cal-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.OrigenManual, stored.Origen)
	assert.Equal(t, "user-1", stored.UsuarioCreador)
	assert.Equal(t, "user-2", stored.UsuarioModificador)
}

func TestCalificacion_DeleteMensajeConNombreLegal(t *testing.T) {
	uc, repo, _ := newCalificacionUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, "user-1", montoRequest("100"))
	require.NoError(t, err)

	out, err := uc.Delete(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "La calificación de Inversiones Acme SpA fue eliminada exitosamente.", out.Message)
	assert.Empty(t, repo.byID)

	_, err = uc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalificacion_Validaciones(t *testing.T) {
	uc, _, _ := newCalificacionUC()
	ctx := context.Background()

	fueraDeRango := map[int]decimal.Decimal{7: decimal.NewFromInt(1)}
	excedida := map[int]decimal.Decimal{8: decimal.RequireFromString("0.6"), 19: decimal.RequireFromString("0.5")}

	cases := map[string]func(r *dto.CalificacionRequest){
		"subsidiaria inexistente":      func(r *dto.CalificacionRequest) { r.SubsidiariaID = "otra" },
		"fecha inválida":               func(r *dto.CalificacionRequest) { r.FechaInicioPeriodo = "31-01-2024" },
		"periodo invertido":            func(r *dto.CalificacionRequest) { r.FechaFinPeriodo = "2023-12-31" },
		"factor fuera de rango":        func(r *dto.CalificacionRequest) { r.Factores = fueraDeRango },
		"suma de factores mayor que 1": func(r *dto.CalificacionRequest) { r.Factores = excedida },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := montoRequest("1")
			mutate(&req)
			_, err := uc.Create(ctx, "user-1", req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Los factores fuera del rango 8..19 no cuentan para la suma.
func TestCalificacion_FactoresFueraDeLaSumaNoLimitan(t *testing.T) {
	uc, _, _ := newCalificacionUC()
	req := montoRequest("1")
	req.Factores = map[int]decimal.Decimal{8: decimal.NewFromInt(1), 20: decimal.NewFromInt(5)}

	out, err := uc.Create(context.Background(), "user-1", req)

	require.NoError(t, err)
	assert.Len(t, out.Factores, 2)
}

func TestCalificacion_ResumenYListado(t *testing.T) {
	uc, repo, _ := newCalificacionUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, "user-1", montoRequest("1"))
	require.NoError(t, err)
	old := &entity.Calificacion{ID: "old", SubsidiariaID: subAcme.ID, CreatedAt: time.Now().AddDate(0, 0, -30)}
	require.NoError(t, repo.Create(ctx, old))

	res, err := uc.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.UltimosSieteDias)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.since, time.Minute)

	list, err := uc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, subAcme.IdentificacionFiscal, list.Items[0].IdentificacionFiscal)
	assert.Equal(t, "ana@holding.cl", list.Items[0].CreadorEmail)
}

func TestCalificacion_ReportePDF(t *testing.T) {
	uc, _, pdf := newCalificacionUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, "user-1", montoRequest("1"))
	require.NoError(t, err)

	doc, filename, err := uc.ReportePDF(ctx)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)
	assert.Regexp(t, `^calificaciones_\d{8}\.pdf$`, filename)
	assert.Len(t, pdf.items, 1)
}
