package ledger_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/ledger"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func dp(v float64) *decimal.Decimal {
	x := decimal.NewFromFloat(v)
	return &x
}

func assertDecimal(t *testing.T, want, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !want.Equal(got) {
		assert.Fail(t, fmt.Sprintf("esperado %s, obtenido %s", want, got), msgAndArgs...)
	}
}

// ── Ejemplos de referencia ────────────────────────────────────────────────────

func TestTotalForMorning_Ejemplo(t *testing.T) {
	entries := []ledger.ProductionEntry{{BalanceAM: dp(10)}, {BalanceAM: dp(5)}}
	assertDecimal(t, d(16), ledger.TotalForMorning(entries, d(2), d(1)))
}

func TestTotalForEvening_Ejemplo(t *testing.T) {
	entries := []ledger.ProductionEntry{{BalancePM: dp(20)}}
	assertDecimal(t, d(33), ledger.TotalForEvening(entries, d(16), d(3)))
}

func TestBalanceFunciones(t *testing.T) {
	assertDecimal(t, d(12.5), ledger.BalanceForMorning(d(10), d(3), d(0.5)))
	assertDecimal(t, d(7), ledger.BalanceForEvening(d(4), d(5), d(2)))
}

// ── Propiedades ───────────────────────────────────────────────────────────────

func TestTotalForMorning_SumaMasArrastreMenosDeduccion(t *testing.T) {
	cases := []struct {
		name    string
		entries []ledger.ProductionEntry
		c, ded  float64
	}{
		{"mixto", []ledger.ProductionEntry{{BalanceAM: dp(3.25)}, {BalancePM: dp(9)}, {BalanceAM: dp(1.75), BalancePM: dp(2)}}, 4, 0.5},
		{"arrastre negativo", []ledger.ProductionEntry{{BalanceAM: dp(8)}}, -3, 1},
		{"todos nil", []ledger.ProductionEntry{{}, {}}, 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sumAM, sumPM := decimal.Zero, decimal.Zero
			for _, e := range tc.entries {
				if e.BalanceAM != nil {
					sumAM = sumAM.Add(*e.BalanceAM)
				}
				if e.BalancePM != nil {
					sumPM = sumPM.Add(*e.BalancePM)
				}
			}
			assertDecimal(t, sumAM.Add(d(tc.c)).Sub(d(tc.ded)), ledger.TotalForMorning(tc.entries, d(tc.c), d(tc.ded)))
			assertDecimal(t, sumPM.Add(d(tc.c)).Sub(d(tc.ded)), ledger.TotalForEvening(tc.entries, d(tc.c), d(tc.ded)))
		})
	}
}

func TestSinEntradas_DevuelveArrastreMenosDeduccion(t *testing.T) {
	assertDecimal(t, d(1.5), ledger.TotalForMorning(nil, d(4), d(2.5)))
	assertDecimal(t, d(1.5), ledger.TotalForEvening([]ledger.ProductionEntry{}, d(4), d(2.5)))
}

func TestDeduccionOmitida_EsCero(t *testing.T) {
	entries := []ledger.ProductionEntry{{BalanceAM: dp(7), BalancePM: dp(6)}}
	var omitted decimal.Decimal // valor cero del tipo

	assertDecimal(t, ledger.TotalForMorning(entries, d(3), decimal.Zero), ledger.TotalForMorning(entries, d(3), omitted))
	assertDecimal(t, d(10), ledger.TotalForMorning(entries, d(3), omitted))
	assertDecimal(t, d(6), ledger.TotalForEvening(entries, omitted, omitted))
}

func TestMonotonia_IncrementoDeUnaEntrada(t *testing.T) {
	base := []ledger.ProductionEntry{{BalanceAM: dp(10), BalancePM: dp(4)}, {BalanceAM: dp(5)}}
	delta := d(2.75)

	bumped := []ledger.ProductionEntry{{BalanceAM: dp(10), BalancePM: dp(4)}, {BalanceAM: dp(5 + 2.75)}}
	diff := ledger.TotalForMorning(bumped, d(1), d(1)).Sub(ledger.TotalForMorning(base, d(1), d(1)))
	assertDecimal(t, delta, diff)

	bumpedPM := []ledger.ProductionEntry{{BalanceAM: dp(10), BalancePM: dp(4 + 2.75)}, {BalanceAM: dp(5)}}
	diffPM := ledger.TotalForEvening(bumpedPM, d(0), d(0)).Sub(ledger.TotalForEvening(base, d(0), d(0)))
	assertDecimal(t, delta, diffPM)
}

func TestDeduccionMayorQueTotal_BalanceNegativo(t *testing.T) {
	entries := []ledger.ProductionEntry{{BalanceAM: dp(2)}}
	got := ledger.TotalForMorning(entries, decimal.Zero, d(5))
	assertDecimal(t, d(-3), got)

	// Una deducción negativa se acepta tal cual y suma al balance.
	assertDecimal(t, d(4), ledger.TotalForMorning(entries, decimal.Zero, d(-2)))
}

func TestNoModificaEntradas(t *testing.T) {
	am := d(3)
	entries := []ledger.ProductionEntry{{BalanceAM: &am}}
	_ = ledger.TotalForMorning(entries, d(1), d(1))
	assertDecimal(t, d(3), *entries[0].BalanceAM)
}
