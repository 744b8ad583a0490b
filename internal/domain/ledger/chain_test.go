package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/ledger"
)

func day(n int) time.Time {
	return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC)
}

func TestClose_UnDia(t *testing.T) {
	b := ledger.Close(ledger.DaySessions{
		Date:        day(1),
		Entries:     []ledger.ProductionEntry{{BalanceAM: dp(10), BalancePM: dp(20)}, {BalanceAM: dp(5)}},
		DeductionAM: d(1),
		DeductionPM: d(3),
	}, d(2))

	assertDecimal(t, d(15), b.TotalMorning)
	assertDecimal(t, d(20), b.TotalEvening)
	assertDecimal(t, d(16), b.BalanceMorning)
	assertDecimal(t, d(33), b.BalanceEvening)
	assertDecimal(t, d(2), b.CarriedIn)
	assert.Equal(t, day(1), b.Date)
}

func TestChain_TardeAlimentaMananaSiguiente(t *testing.T) {
	days := []ledger.DaySessions{
		{Date: day(1), Entries: []ledger.ProductionEntry{{BalanceAM: dp(10), BalancePM: dp(8)}}, DeductionAM: d(2)},
		{Date: day(2), Entries: []ledger.ProductionEntry{{BalanceAM: dp(6)}}, DeductionPM: d(1)},
		{Date: day(3)},
	}

	out := ledger.Chain(d(5), days)
	require.Len(t, out, 3)

	// Día 1: mañana 10+5-2=13, tarde 8+13=21
	assertDecimal(t, d(13), out[0].BalanceMorning)
	assertDecimal(t, d(21), out[0].BalanceEvening)

	for i := 1; i < len(out); i++ {
		assertDecimal(t, out[i-1].BalanceEvening, out[i].CarriedIn, "día %d", i+1)
	}

	// Día 2: mañana 6+21=27, tarde 0+27-1=26
	assertDecimal(t, d(27), out[1].BalanceMorning)
	assertDecimal(t, d(26), out[1].BalanceEvening)

	// Día 3 sin entradas: el balance solo se arrastra.
	assertDecimal(t, d(26), out[2].BalanceMorning)
	assertDecimal(t, d(26), out[2].BalanceEvening)
}

func TestChain_Vacio(t *testing.T) {
	assert.Empty(t, ledger.Chain(decimal.Zero, nil))
}
