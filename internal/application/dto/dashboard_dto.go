package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen del día y del mes para la pantalla principal.
type DashboardSummaryDTO struct {
	Date              string          `json:"date"`
	TodayMorning      decimal.Decimal `json:"today_morning"`
	TodayEvening      decimal.Decimal `json:"today_evening"`
	LastClosedDate    *string         `json:"last_closed_date"`
	LastClosedBalance decimal.Decimal `json:"last_closed_balance"`
	MonthSalesLiters  decimal.Decimal `json:"month_sales_liters"`
	MonthSalesAmount  decimal.Decimal `json:"month_sales_amount"`
	AnimalsByType     map[string]int  `json:"animals_by_type"`
	PendingServings   int             `json:"pending_servings"`
	MonthLabel        string          `json:"month_label"`
}
