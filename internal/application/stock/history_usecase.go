package stock

import (
	"context"

	"github.com/sandeep7070/mai-santani-backend/internal/application/dto"
	"github.com/sandeep7070/mai-santani-backend/internal/domain"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/repository"
)

// StockHistoryUseCase ruta de lectura paginada sobre el ledger, con la
// identidad del producto y el antes/después de stock por entrada.
type StockHistoryUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewStockHistoryUseCase construye el caso de uso.
func NewStockHistoryUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *StockHistoryUseCase {
	return &StockHistoryUseCase{productRepo: productRepo, movRepo: movRepo}
}

// History devuelve una página del historial de un producto, ordenada por
// (created_at DESC, id DESC). Falla con ErrNotFound si el producto no existe
// y con ErrInvalidInput si la paginación es inválida.
func (uc *StockHistoryUseCase) History(ctx context.Context, productID string, page dto.PageRequest) (*dto.StockHistoryDTO, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	total, err := uc.movRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.movRepo.ListByProduct(ctx, productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return buildHistoryPage(rows, total, page), nil
}

// HistoryAll devuelve una página del historial global (todos los productos).
func (uc *StockHistoryUseCase) HistoryAll(ctx context.Context, page dto.PageRequest) (*dto.StockHistoryDTO, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}

	total, err := uc.movRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.movRepo.ListAll(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return buildHistoryPage(rows, total, page), nil
}

func buildHistoryPage(rows []*repository.MovementWithProduct, total int64, page dto.PageRequest) *dto.StockHistoryDTO {
	docs := make([]dto.StockMovementDTO, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, toMovementDTO(row))
	}
	return &dto.StockHistoryDTO{
		Docs:         docs,
		PageResponse: dto.NewPageResponse(total, page.Page, page.Limit),
	}
}

// toMovementDTO reconstruye old/new stock desde el resulting_stock guardado al
// escribir el movimiento: exacto para cualquier entrada, no solo la más reciente.
func toMovementDTO(row *repository.MovementWithProduct) dto.StockMovementDTO {
	m := row.Movement
	newStock := m.ResultingStock
	oldStock := newStock - m.Quantity
	if m.Type == entity.MovementTypeOut {
		oldStock = newStock + m.Quantity
	}
	return dto.StockMovementDTO{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: row.ProductName,
		SKU:         row.ProductSKU,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Note:        m.Note,
		OldStock:    oldStock,
		NewStock:    newStock,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
