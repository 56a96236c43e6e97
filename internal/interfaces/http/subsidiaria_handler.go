package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/usecase"
)

// SubsidiariaHandler maneja las peticiones HTTP para el recurso Subsidiaria.
type SubsidiariaHandler struct {
	uc *usecase.SubsidiariaUseCase
}

// NewSubsidiariaHandler construye el handler inyectando el caso de uso.
func NewSubsidiariaHandler(uc *usecase.SubsidiariaUseCase) *SubsidiariaHandler {
	return &SubsidiariaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar subsidiaria
// @Tags         subsidiarias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSubsidiariaRequest  true  "Nombre legal y RUT"
// @Success      201   {object}  dto.SubsidiariaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/subsidiarias [post]
func (h *SubsidiariaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubsidiariaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NombreLegal == "" || in.IdentificacionFiscal == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre_legal e identificacion_fiscal son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener subsidiaria por ID
// @Tags         subsidiarias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la subsidiaria"
// @Success      200  {object}  dto.SubsidiariaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subsidiarias/{id} [get]
func (h *SubsidiariaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "subsidiaria no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar subsidiarias
// @Tags         subsidiarias
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SubsidiariaListResponse
// @Router       /api/subsidiarias [get]
func (h *SubsidiariaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
