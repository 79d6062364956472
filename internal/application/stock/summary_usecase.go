package stock

import (
	"context"

	"github.com/sandeep7070/mai-santani-backend/internal/application/dto"
	"github.com/sandeep7070/mai-santani-backend/internal/domain"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/repository"
)

// StockSummaryUseCase agrega el ledger por producto: total entradas, total
// salidas, stock derivado y última actualización. Lectura pura sobre el
// ledger y el catálogo; no toca la ruta de escritura.
type StockSummaryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewStockSummaryUseCase construye el caso de uso.
func NewStockSummaryUseCase(movRepo repository.StockMovementRepository) *StockSummaryUseCase {
	return &StockSummaryUseCase{movRepo: movRepo}
}

// Summarize devuelve el rollup de todos los productos, incluidos los que no
// tienen movimientos (totales en cero). Expone CurrentStock junto al
// DerivedStock para que el caller detecte drift; la reconciliación es una
// acción externa deliberada.
func (uc *StockSummaryUseCase) Summarize(ctx context.Context) ([]dto.StockSummaryDTO, error) {
	rows, err := uc.movRepo.Summarize(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockSummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSummaryDTO(row))
	}
	return out, nil
}

// SummarizeProduct devuelve el rollup de un solo producto.
func (uc *StockSummaryUseCase) SummarizeProduct(ctx context.Context, productID string) (*dto.StockSummaryDTO, error) {
	row, err := uc.movRepo.SummarizeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	summary := toSummaryDTO(row)
	return &summary, nil
}

func toSummaryDTO(row *repository.StockSummaryResult) dto.StockSummaryDTO {
	derived := row.TotalIn - row.TotalOut
	return dto.StockSummaryDTO{
		ProductID:    row.ProductID,
		ProductName:  row.ProductName,
		SKU:          row.SKU,
		TotalIn:      row.TotalIn,
		TotalOut:     row.TotalOut,
		DerivedStock: derived,
		CurrentStock: row.CurrentStock,
		Drift:        row.CurrentStock - derived,
		LastUpdated:  row.LastUpdated,
	}
}
