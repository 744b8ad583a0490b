package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/usecase"
)

// ServingHandler servicios (montas e inseminaciones).
type ServingHandler struct {
	uc *usecase.ServingUseCase
}

// NewServingHandler construye el handler.
func NewServingHandler(uc *usecase.ServingUseCase) *ServingHandler {
	return &ServingHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar servicio
// @Description  La fecha esperada de parto se calcula a 283 días del servicio.
// @Tags         servings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateServingRequest  true  "Hembra, fecha y tipo"
// @Success      201   {object}  dto.ServingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/servings [post]
func (h *ServingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.FemaleID == "" || in.ServedAt == "" {
		return validation(c, "female_id y served_at son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar servicios
// @Tags         servings
// @Produce      json
// @Security     Bearer
// @Param        female_id  query  string  false  "Filtrar por hembra"
// @Param        limit      query  int     false  "Límite (default 20, max 100)"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {object}  dto.ServingListResponse
// @Router       /api/servings [get]
func (h *ServingHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), c.Query("female_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener servicio
// @Tags         servings
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "Serving ID"
// @Success      200  {object}  dto.ServingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servings/{id} [get]
func (h *ServingHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "servicio no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar servicio
// @Description  Normalmente para registrar el resultado (successful, failed).
// @Tags         servings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "Serving ID"
// @Param        body  body  dto.UpdateServingRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ServingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servings/{id} [put]
func (h *ServingHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateServingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "servicio no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar servicio
// @Tags         servings
// @Security     Bearer
// @Param        id   path  string  true  "Serving ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servings/{id} [delete]
func (h *ServingHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
