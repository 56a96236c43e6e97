package carga

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
)

// MontoPipeline carga de montos de impuesto por periodo. Llave: subsidiaria y fecha de inicio.
func MontoPipeline() Pipeline {
	return Pipeline{
		Tipo:            TipoMonto,
		Origen:          entity.OrigenCargaMasivaMonto,
		Manifest:        planilla.NewManifest("ID Fiscal Empresa", "Fecha Inicio", "Fecha Fin", "Monto Impuesto", "Estado"),
		ColumnaIDFiscal: "ID_FISCAL_EMPRESA",
		Convert:         convertMonto,
		Ejemplo: []any{
			"76000000-0",
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			decimal.RequireFromString("125000.75"),
			"Vigente",
		},
	}
}

func convertMonto(row planilla.Row, subsidiariaID string) (entity.ClaveUnica, *entity.Calificacion, error) {
	inicio, err := row.Date("FECHA_INICIO")
	if err != nil {
		return nil, nil, err
	}
	fin, err := row.Date("FECHA_FIN")
	if err != nil {
		return nil, nil, err
	}
	monto, err := row.Decimal("MONTO_IMPUESTO")
	if err != nil {
		return nil, nil, err
	}

	c := &entity.Calificacion{
		FechaFinPeriodo: &fin,
		MontoImpuesto:   decimal.NewNullDecimal(monto),
		Estado:          row.Text("ESTADO"),
	}
	key := entity.ClaveMonto{SubsidiariaID: subsidiariaID, FechaInicioPeriodo: inicio}
	return key, c, nil
}
