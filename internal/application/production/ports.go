package production

import (
	"context"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el cierre del día y el re-encadenado de los días siguientes sean atómicos.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		prodRepo repository.ProductionRepository,
		summaryRepo repository.DailySummaryRepository,
	) error) error
}

// LedgerPDFGenerator genera el estado de cuenta del libro de leche en PDF.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, statement *dto.LedgerRangeResponse) ([]byte, error)
}
