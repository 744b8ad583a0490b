package production

import (
	"context"
	"fmt"
	"time"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/ledger"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// MaxLedgerRangeDays rango máximo de días para la consulta y el PDF del libro.
const MaxLedgerRangeDays = 366

// LedgerUseCase cierre diario y consultas del libro de leche.
type LedgerUseCase struct {
	txRunner    TxRunner
	prodRepo    repository.ProductionRepository
	summaryRepo repository.DailySummaryRepository
	pdf         LedgerPDFGenerator
}

// NewLedgerUseCase construye el caso de uso. pdf puede ser nil si no se expone el estado de cuenta.
func NewLedgerUseCase(
	txRunner TxRunner,
	prodRepo repository.ProductionRepository,
	summaryRepo repository.DailySummaryRepository,
	pdf LedgerPDFGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		prodRepo:    prodRepo,
		summaryRepo: summaryRepo,
		pdf:         pdf,
	}
}

// CloseDay cierra el día: el arrastre es el balance de la tarde del día anterior,
// encadenado desde el último cierre a través de los días sin cerrar. Los cierres
// posteriores ya existentes se recalculan en la misma transacción.
func (uc *LedgerUseCase) CloseDay(ctx context.Context, userID string, date time.Time, in dto.CloseDayRequest) (*dto.DayBalanceResponse, error) {
	if in.PoshoAM.IsNegative() || in.PoshoPM.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !dto.FitsScale(in.PoshoAM, dto.AmountScale) || !dto.FitsScale(in.PoshoPM, dto.AmountScale) {
		return nil, domain.ErrInvalidInput
	}
	date = dto.Truncate(date)
	var closed ledger.DayBalance

	err := uc.txRunner.RunLedger(ctx, func(
		prodRepo repository.ProductionRepository,
		summaryRepo repository.DailySummaryRepository,
	) error {
		carry, err := carryInto(ctx, prodRepo, summaryRepo, date)
		if err != nil {
			return err
		}
		balances, err := rechainFrom(ctx, prodRepo, summaryRepo, date, carry, &entity.DailySummary{
			Date:        date,
			DeductionAM: in.PoshoAM,
			DeductionPM: in.PoshoPM,
			ClosedBy:    userID,
		})
		if err != nil {
			return err
		}
		closed = balances[dto.FormatDate(date)]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cerrar día %s: %w", dto.FormatDate(date), err)
	}
	resp := toDayBalanceResponse(closed, true)
	return &resp, nil
}

// Range recalcula la cadena de balances día a día en [from, to]. El arrastre
// inicial es el balance de la tarde del día anterior a from; los días cerrados
// reutilizan su posho y los demás usan posho 0.
func (uc *LedgerUseCase) Range(ctx context.Context, from, to time.Time) (*dto.LedgerRangeResponse, error) {
	from, to = dto.Truncate(from), dto.Truncate(to)
	if to.Before(from) || to.Sub(from) > time.Duration(MaxLedgerRangeDays)*24*time.Hour {
		return nil, domain.ErrInvalidInput
	}

	opening, err := carryInto(ctx, uc.prodRepo, uc.summaryRepo, from)
	if err != nil {
		return nil, fmt.Errorf("libro: arrastre inicial: %w", err)
	}
	records, err := uc.prodRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("libro: registros: %w", err)
	}
	summaries, err := uc.summaryRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("libro: cierres: %w", err)
	}
	closedDays := make(map[string]*entity.DailySummary, len(summaries))
	for _, s := range summaries {
		closedDays[dto.FormatDate(s.Date)] = s
	}

	balances := ledger.Chain(opening, chainDays(from, to, records, closedDays))
	out := &dto.LedgerRangeResponse{
		From:    dto.FormatDate(from),
		To:      dto.FormatDate(to),
		Opening: opening,
		Days:    make([]dto.DayBalanceResponse, 0, len(balances)),
	}
	for _, b := range balances {
		_, ok := closedDays[dto.FormatDate(b.Date)]
		out.Days = append(out.Days, toDayBalanceResponse(b, ok))
	}
	return out, nil
}

// Preview aplica la calculadora sobre entradas arbitrarias, sin persistir ni validar.
func (uc *LedgerUseCase) Preview(in dto.LedgerPreviewRequest) *dto.LedgerPreviewResponse {
	morning := ledger.TotalForMorning(in.Entries, in.CarriedFromYesterday, in.DeductionAM)
	evening := ledger.TotalForEvening(in.Entries, morning, in.DeductionPM)
	return &dto.LedgerPreviewResponse{
		TotalMorning:   ledger.SumMorning(in.Entries),
		BalanceMorning: morning,
		TotalEvening:   ledger.SumEvening(in.Entries),
		BalanceEvening: evening,
	}
}

// StatementPDF genera el estado de cuenta del rango en PDF.
func (uc *LedgerUseCase) StatementPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("libro: generador PDF no configurado")
	}
	statement, err := uc.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateLedgerPDF(ctx, statement)
}

// Entries convierte registros de producción en entradas de la calculadora (netos por sesión).
func Entries(records []*entity.ProductionRecord) []ledger.ProductionEntry {
	out := make([]ledger.ProductionEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, ledger.ProductionEntry{BalanceAM: rec.NetAM(), BalancePM: rec.NetPM()})
	}
	return out
}

func toDayBalanceResponse(b ledger.DayBalance, closed bool) dto.DayBalanceResponse {
	return dto.DayBalanceResponse{
		Date:           dto.FormatDate(b.Date),
		TotalMorning:   b.TotalMorning,
		TotalEvening:   b.TotalEvening,
		DeductionAM:    b.DeductionAM,
		DeductionPM:    b.DeductionPM,
		CarriedIn:      b.CarriedIn,
		BalanceMorning: b.BalanceMorning,
		BalanceEvening: b.BalanceEvening,
		Closed:         closed,
	}
}
