package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/usecase"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// AnimalHandler maneja los endpoints del hato.
type AnimalHandler struct {
	uc *usecase.AnimalUseCase
}

// NewAnimalHandler construye el handler de animales.
func NewAnimalHandler(uc *usecase.AnimalUseCase) *AnimalHandler {
	return &AnimalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateAnimalRequest  true  "Datos del animal"
// @Success      201   {object}  dto.AnimalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/animals [post]
func (h *AnimalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAnimalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.TagNumber == "" || in.Type == "" || in.Gender == "" {
		return validation(c, "tag_number, type y gender son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener animal
// @Tags         animals
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "Animal ID"
// @Success      200  {object}  dto.AnimalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [get]
func (h *AnimalHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "animal no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar animales
// @Tags         animals
// @Produce      json
// @Security     Bearer
// @Param        type    query  string  false  "cow, bull o calf"
// @Param        gender  query  string  false  "male o female"
// @Param        limit   query  int     false  "Límite (default 20, max 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.AnimalListResponse
// @Router       /api/animals [get]
func (h *AnimalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.AnimalFilter{Type: c.Query("type"), Gender: c.Query("gender")}
	out, err := h.uc.List(c.UserContext(), filter, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "Animal ID"
// @Param        body  body  dto.UpdateAnimalRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.AnimalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [put]
func (h *AnimalHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateAnimalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "animal no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar animal
// @Tags         animals
// @Security     Bearer
// @Param        id   path  string  true  "Animal ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [delete]
func (h *AnimalHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
