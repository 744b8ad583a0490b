package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/ledger"
)

// CloseDayRequest posho de cada sesión al cerrar el día.
type CloseDayRequest struct {
	PoshoAM decimal.Decimal `json:"posho_am"`
	PoshoPM decimal.Decimal `json:"posho_pm"`
}

// DayBalanceResponse balance de un día del libro de leche.
type DayBalanceResponse struct {
	Date           string          `json:"date"`
	TotalMorning   decimal.Decimal `json:"total_morning"`
	TotalEvening   decimal.Decimal `json:"total_evening"`
	DeductionAM    decimal.Decimal `json:"posho_am"`
	DeductionPM    decimal.Decimal `json:"posho_pm"`
	CarriedIn      decimal.Decimal `json:"carried_in"`
	BalanceMorning decimal.Decimal `json:"balance_morning"`
	BalanceEvening decimal.Decimal `json:"balance_evening"`
	Closed         bool            `json:"closed"`
}

// LedgerRangeResponse cadena de balances en un rango de fechas.
type LedgerRangeResponse struct {
	From    string               `json:"from"`
	To      string               `json:"to"`
	Opening decimal.Decimal      `json:"opening"`
	Days    []DayBalanceResponse `json:"days"`
}

// LedgerPreviewRequest cálculo sin estado sobre entradas arbitrarias.
type LedgerPreviewRequest struct {
	Entries              []ledger.ProductionEntry `json:"entries"`
	CarriedFromYesterday decimal.Decimal          `json:"carried_from_yesterday"`
	DeductionAM          decimal.Decimal          `json:"deduction_am"`
	DeductionPM          decimal.Decimal          `json:"deduction_pm"`
}

// LedgerPreviewResponse resultado del cálculo sin estado.
type LedgerPreviewResponse struct {
	TotalMorning   decimal.Decimal `json:"total_morning"`
	BalanceMorning decimal.Decimal `json:"balance_morning"`
	TotalEvening   decimal.Decimal `json:"total_evening"`
	BalanceEvening decimal.Decimal `json:"balance_evening"`
}
