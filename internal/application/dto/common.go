package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout formato de fechas en query params y cuerpos JSON (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate interpreta YYYY-MM-DD como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// FormatDate formatea una fecha como YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Truncate normaliza un instante a la medianoche UTC de su fecha.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Decimales de las columnas NUMERIC: litros, posho y montos con 2; precio por litro con 4.
const (
	AmountScale int32 = 2
	PriceScale  int32 = 4
)

// FitsScale indica si d se puede guardar sin redondeo con places decimales.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// ClampPage aplica los límites de paginación (20 por defecto, máximo 100).
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
