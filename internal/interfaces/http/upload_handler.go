package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
)

// UploadHandler subida y borrado de imágenes (usuarios y animales).
type UploadHandler struct {
	uc *media.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *media.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen
// @Description  Acepta JPEG, PNG o WebP. El tipo se detecta por contenido.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        file    formData  file    true   "Imagen"
// @Param        folder  formData  string  false  "users o animals (default animals)"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return validation(c, "campo file requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), c.FormValue("folder"), f, fh.Size)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar imagen
// @Tags         uploads
// @Security     Bearer
// @Param        path  path  string  true  "folder/archivo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/uploads/{path} [delete]
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("*")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
