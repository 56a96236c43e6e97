package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/carga"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
)

// campoArchivo nombre del campo multipart con la planilla.
const campoArchivo = "file"

// CargaHandler cargas masivas de factores y montos, y sus plantillas.
type CargaHandler struct {
	svc *carga.Service
}

// NewCargaHandler construye el handler.
func NewCargaHandler(svc *carga.Service) *CargaHandler {
	return &CargaHandler{svc: svc}
}

// Import godoc
// @Summary      Carga masiva de calificaciones
// @Description  Sube una planilla CSV (;) o Excel. Los errores de formato, columnas faltantes o suma de factores rechazan el archivo completo; los errores de fila se informan en failed.
// @Tags         cargas
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        tipo  path      string  true  "factor | monto"
// @Param        file  formData  file    true  "Planilla .csv, .xlsx o .xls"
// @Success      200   {object}  dto.CargaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cargas/{tipo} [post]
func (h *CargaHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile(campoArchivo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "debe adjuntar el archivo en el campo 'file'"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DECODE_ERROR", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	summary, err := h.svc.Import(c.UserContext(), c.Params("tipo"), fh.Filename, f, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary.Response())
}

// Plantilla godoc
// @Summary      Descargar plantilla de carga
// @Tags         cargas
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        tipo     path   string  true   "factor | monto"
// @Param        formato  query  string  false  "csv | xlsx"  default(csv)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cargas/{tipo}/plantilla [get]
func (h *CargaHandler) Plantilla(c *fiber.Ctx) error {
	var buf bytes.Buffer
	filename, err := h.svc.Plantilla(&buf, c.Params("tipo"), c.Query("formato", carga.FormatoCSV))
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	return c.Send(buf.Bytes())
}
