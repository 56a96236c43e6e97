package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/usecase"
)

// CalificacionHandler mantenedor manual, resumen y reporte de calificaciones.
type CalificacionHandler struct {
	uc *usecase.CalificacionUseCase
}

// NewCalificacionHandler construye el handler.
func NewCalificacionHandler(uc *usecase.CalificacionUseCase) *CalificacionHandler {
	return &CalificacionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear calificación
// @Tags         calificaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CalificacionRequest  true  "Datos de la calificación"
// @Success      201   {object}  dto.CalificacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/calificaciones [post]
func (h *CalificacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CalificacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar calificaciones
// @Tags         calificaciones
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CalificacionListResponse
// @Router       /api/calificaciones [get]
func (h *CalificacionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener calificación
// @Tags         calificaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la calificación"
// @Success      200  {object}  dto.CalificacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calificaciones/{id} [get]
func (h *CalificacionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "calificación no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar calificación
// @Tags         calificaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la calificación"
// @Param        body  body  dto.CalificacionRequest  true  "Datos de la calificación"
// @Success      200   {object}  dto.CalificacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calificaciones/{id} [put]
func (h *CalificacionHandler) Update(c *fiber.Ctx) error {
	var in dto.CalificacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar calificación
// @Tags         calificaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la calificación"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calificaciones/{id} [delete]
func (h *CalificacionHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resumen godoc
// @Summary      Contadores del panel (total y últimos 7 días)
// @Tags         calificaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ResumenResponse
// @Router       /api/calificaciones/resumen [get]
func (h *CalificacionHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reporte godoc
// @Summary      Reporte PDF del listado de calificaciones
// @Tags         calificaciones
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/calificaciones/reporte.pdf [get]
func (h *CalificacionHandler) Reporte(c *fiber.Ctx) error {
	doc, filename, err := h.uc.ReportePDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}
