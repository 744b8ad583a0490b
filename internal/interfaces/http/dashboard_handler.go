package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/Mamba1099/milk-farm-sub002/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve la producción de hoy, el último cierre y las ventas del mes.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (today_morning, today_evening, last_closed_balance,
// month_sales_liters, month_sales_amount, animals_by_type, pending_servings).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
