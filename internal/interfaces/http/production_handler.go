package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
)

// ProductionHandler registros de ordeño y libro diario de leche.
type ProductionHandler struct {
	records *production.RecordUseCase
	ledger  *production.LedgerUseCase
}

// NewProductionHandler construye el handler de producción.
func NewProductionHandler(records *production.RecordUseCase, ledger *production.LedgerUseCase) *ProductionHandler {
	return &ProductionHandler{records: records, ledger: ledger}
}

// Create godoc
// @Summary      Registrar producción
// @Description  Un registro por animal y fecha. La porción del ternero se descuenta de cada sesión.
// @Tags         production
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateProductionRequest  true  "Litros por sesión"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.AnimalID == "" || in.Date == "" {
		return validation(c, "animal_id y date son requeridos")
	}
	out, err := h.records.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByDate godoc
// @Summary      Producción de un día
// @Tags         production
// @Produce      json
// @Security     Bearer
// @Param        date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Success      200  {object}  dto.ProductionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production [get]
func (h *ProductionHandler) ListByDate(c *fiber.Ctx) error {
	date := dto.Truncate(time.Now())
	if q := c.Query("date"); q != "" {
		d, err := dto.ParseDate(q)
		if err != nil {
			return validation(c, "date debe tener formato YYYY-MM-DD")
		}
		date = d
	}
	out, err := h.records.ListByDate(c.UserContext(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro de producción
// @Tags         production
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "Record ID"
// @Success      200  {object}  dto.ProductionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.records.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "registro no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar registro de producción
// @Tags         production
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                       true  "Record ID"
// @Param        body  body  dto.UpdateProductionRequest  true  "Cantidades"
// @Success      200  {object}  dto.ProductionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [put]
func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.records.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "registro no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de producción
// @Tags         production
// @Security     Bearer
// @Param        id   path  string  true  "Record ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.records.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CloseDay godoc
// @Summary      Cerrar el día en el libro
// @Description  Suma los netos del día, arrastra el balance de la tarde anterior y descuenta el posho.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        date  path  string               true  "YYYY-MM-DD"
// @Param        body  body  dto.CloseDayRequest  false  "posho_am, posho_pm (0 si se omite)"
// @Success      200  {object}  dto.DayBalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/ledger/{date}/close [post]
func (h *ProductionHandler) CloseDay(c *fiber.Ctx) error {
	date, err := dto.ParseDate(c.Params("date"))
	if err != nil {
		return validation(c, "date debe tener formato YYYY-MM-DD")
	}
	// Sin cuerpo el posho de ambas sesiones es 0.
	var in dto.CloseDayRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.ledger.CloseDay(c.UserContext(), GetUserID(c), date, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Range godoc
// @Summary      Libro de leche por rango
// @Description  Recalcula la cadena de balances día a día con el arrastre del día anterior a from.
// @Tags         ledger
// @Produce      json
// @Security     Bearer
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.LedgerRangeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/ledger [get]
func (h *ProductionHandler) Range(c *fiber.Ctx) error {
	from, to, ok := parseRange(c)
	if !ok {
		return validation(c, "from y to son requeridos con formato YYYY-MM-DD")
	}
	out, err := h.ledger.Range(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StatementPDF godoc
// @Summary      Estado de cuenta del libro en PDF
// @Tags         ledger
// @Produce      application/pdf
// @Security     Bearer
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/ledger/pdf [get]
func (h *ProductionHandler) StatementPDF(c *fiber.Ctx) error {
	from, to, ok := parseRange(c)
	if !ok {
		return validation(c, "from y to son requeridos con formato YYYY-MM-DD")
	}
	pdf, err := h.ledger.StatementPDF(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="libro-%s-%s.pdf"`, dto.FormatDate(from), dto.FormatDate(to)))
	return c.Send(pdf)
}

// Preview godoc
// @Summary      Calcular balances sin guardar
// @Description  Aplica el cálculo del libro a entradas arbitrarias. No valida las deducciones.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LedgerPreviewRequest  true  "Entradas, arrastre y deducciones"
// @Success      200  {object}  dto.LedgerPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/preview [post]
func (h *ProductionHandler) Preview(c *fiber.Ctx) error {
	var in dto.LedgerPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(h.ledger.Preview(in))
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, bool) {
	from, err := dto.ParseDate(c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := dto.ParseDate(c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
