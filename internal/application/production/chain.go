package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/ledger"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var (
	beginningOfTime = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	endOfTime       = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// carryInto devuelve el balance de la tarde del día anterior a date. Parte del
// último cierre y encadena cada día intermedio sin cerrar con posho 0.
func carryInto(
	ctx context.Context,
	prodRepo repository.ProductionRepository,
	summaryRepo repository.DailySummaryRepository,
	date time.Time,
) (decimal.Decimal, error) {
	carry := decimal.Zero
	start := beginningOfTime
	prev, err := summaryRepo.LastBefore(ctx, date)
	if err != nil {
		return carry, err
	}
	if prev != nil {
		carry = prev.BalanceEvening
		start = prev.Date.AddDate(0, 0, 1)
	}
	end := date.AddDate(0, 0, -1)
	if end.Before(start) {
		return carry, nil
	}
	records, err := prodRepo.ListBetween(ctx, start, end)
	if err != nil {
		return carry, err
	}
	if len(records) == 0 {
		return carry, nil
	}
	if prev == nil {
		start = dto.Truncate(records[0].Date)
		for _, rec := range records[1:] {
			if d := dto.Truncate(rec.Date); d.Before(start) {
				start = d
			}
		}
	}
	balances := ledger.Chain(carry, chainDays(start, end, records, nil))
	return balances[len(balances)-1].BalanceEvening, nil
}

// rechainFrom recalcula la cadena desde from (incluido) con el arrastre carry y
// vuelve a guardar cada cierre existente. closing, si no es nil, se guarda como
// cierre de su fecha aunque todavía no exista. Devuelve los balances de los días
// cerrados indexados por fecha.
func rechainFrom(
	ctx context.Context,
	prodRepo repository.ProductionRepository,
	summaryRepo repository.DailySummaryRepository,
	from time.Time,
	carry decimal.Decimal,
	closing *entity.DailySummary,
) (map[string]ledger.DayBalance, error) {
	summaries, err := summaryRepo.ListBetween(ctx, from, endOfTime)
	if err != nil {
		return nil, err
	}
	closed := make(map[string]*entity.DailySummary, len(summaries)+1)
	last := from
	for _, s := range summaries {
		closed[dto.FormatDate(s.Date)] = s
		if s.Date.After(last) {
			last = s.Date
		}
	}
	if closing != nil {
		k := dto.FormatDate(closing.Date)
		if s, ok := closed[k]; ok {
			closing.CreatedAt = s.CreatedAt
		}
		closed[k] = closing
		if closing.Date.After(last) {
			last = closing.Date
		}
	}
	if len(closed) == 0 {
		return nil, nil
	}

	records, err := prodRepo.ListBetween(ctx, from, last)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ledger.DayBalance, len(closed))
	now := time.Now()
	for _, b := range ledger.Chain(carry, chainDays(from, last, records, closed)) {
		k := dto.FormatDate(b.Date)
		s, ok := closed[k]
		if !ok {
			continue
		}
		updated := &entity.DailySummary{
			Date:           b.Date,
			TotalMorning:   b.TotalMorning,
			TotalEvening:   b.TotalEvening,
			DeductionAM:    b.DeductionAM,
			DeductionPM:    b.DeductionPM,
			CarriedIn:      b.CarriedIn,
			BalanceMorning: b.BalanceMorning,
			BalanceEvening: b.BalanceEvening,
			ClosedBy:       s.ClosedBy,
			CreatedAt:      s.CreatedAt,
			UpdatedAt:      now,
		}
		if updated.CreatedAt.IsZero() {
			updated.CreatedAt = now
		}
		if err := summaryRepo.Upsert(ctx, updated); err != nil {
			return nil, err
		}
		out[k] = b
	}
	return out, nil
}

// chainDays arma un DaySessions por día calendario en [from, to]. Los días
// cerrados llevan su posho; los demás, 0.
func chainDays(from, to time.Time, records []*entity.ProductionRecord, closed map[string]*entity.DailySummary) []ledger.DaySessions {
	byDay := make(map[string][]*entity.ProductionRecord)
	for _, rec := range records {
		k := dto.FormatDate(rec.Date)
		byDay[k] = append(byDay[k], rec)
	}
	var days []ledger.DaySessions
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		k := dto.FormatDate(d)
		day := ledger.DaySessions{Date: d, Entries: Entries(byDay[k])}
		if s, ok := closed[k]; ok {
			day.DeductionAM = s.DeductionAM
			day.DeductionPM = s.DeductionPM
		}
		days = append(days, day)
	}
	return days
}

// rechainAfterEdit mantiene los cierres al día tras cambiar registros de date.
func rechainAfterEdit(
	ctx context.Context,
	prodRepo repository.ProductionRepository,
	summaryRepo repository.DailySummaryRepository,
	date time.Time,
) error {
	date = dto.Truncate(date)
	carry, err := carryInto(ctx, prodRepo, summaryRepo, date)
	if err != nil {
		return err
	}
	_, err = rechainFrom(ctx, prodRepo, summaryRepo, date, carry, nil)
	return err
}
