package carga

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/planilla"
)

// FactorPipeline carga de factores por dividendo.
// Llave: subsidiaria, ejercicio, instrumento, fecha de pago, secuencia y número de dividendo.
func FactorPipeline() Pipeline {
	cols := []string{
		"ID_FISCAL_EMPRESA", "Ejercicio", "Mercado", "Instrumento", "Fecha", "Secuencia",
		"Numero de dividendo", "Tipo sociedad", "Valor Historico",
	}
	ejemplo := []any{
		"76000000-0", 2024, "Acciones", "ACME", time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
		1, 1, "Abierta", decimal.RequireFromString("1500.5"),
	}
	for n := entity.FactorMin; n <= entity.FactorMax; n++ {
		cols = append(cols, fmt.Sprintf("Factor %d", n))
		switch n {
		case 8:
			ejemplo = append(ejemplo, decimal.RequireFromString("0.25"))
		case 9:
			ejemplo = append(ejemplo, decimal.RequireFromString("0.5"))
		default:
			ejemplo = append(ejemplo, decimal.Zero)
		}
	}
	return Pipeline{
		Tipo:            TipoFactor,
		Origen:          entity.OrigenCargaMasivaFactor,
		Manifest:        planilla.NewManifest(cols...),
		Rules:           []planilla.Rule{planilla.NewFactorSumRule()},
		ColumnaIDFiscal: "ID_FISCAL_EMPRESA",
		Convert:         convertFactor,
		Ejemplo:         ejemplo,
	}
}

func convertFactor(row planilla.Row, subsidiariaID string) (entity.ClaveUnica, *entity.Calificacion, error) {
	ejercicio, err := row.Int("EJERCICIO")
	if err != nil {
		return nil, nil, err
	}
	fecha, err := row.Date("FECHA")
	if err != nil {
		return nil, nil, err
	}
	secuencia, err := row.Int("SECUENCIA")
	if err != nil {
		return nil, nil, err
	}
	dividendo, err := row.Int("NUMERO_DE_DIVIDENDO")
	if err != nil {
		return nil, nil, err
	}
	valor, err := row.Decimal("VALOR_HISTORICO")
	if err != nil {
		return nil, nil, err
	}

	c := &entity.Calificacion{
		Mercado:        row.Text("MERCADO"),
		TipoSociedad:   row.Text("TIPO_SOCIEDAD"),
		ValorHistorico: decimal.NewNullDecimal(valor),
	}
	for n := entity.FactorMin; n <= entity.FactorMax; n++ {
		v, err := row.NullDecimal(fmt.Sprintf("FACTOR_%d", n))
		if err != nil {
			return nil, nil, err
		}
		c.SetFactor(n, v)
	}

	key := entity.ClaveFactor{
		SubsidiariaID:   subsidiariaID,
		Ejercicio:       ejercicio,
		Instrumento:     row.Text("INSTRUMENTO"),
		FechaPago:       fecha,
		Secuencia:       secuencia,
		NumeroDividendo: dividendo,
	}
	return key, c, nil
}
