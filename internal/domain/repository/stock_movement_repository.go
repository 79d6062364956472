package repository

import (
	"context"
	"time"

	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
)

// MovementWithProduct movimiento enriquecido con la identidad del producto
// (join en la consulta; el use case lo convierte en DTO).
type MovementWithProduct struct {
	Movement    entity.StockMovement
	ProductName string
	ProductSKU  string
}

// StockSummaryResult resultado crudo de la agregación del ledger por producto.
// Lo produce la DB; DerivedStock = TotalIn - TotalOut se calcula en el use case.
type StockSummaryResult struct {
	ProductID    string
	ProductName  string
	SKU          string
	TotalIn      int64
	TotalOut     int64
	CurrentStock int64 // contador vivo de products, para detectar drift
	LastUpdated  *time.Time
}

// StockMovementRepository define el puerto de persistencia del ledger de stock.
// El ledger es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct pagina los movimientos de un producto ordenados por
	// (created_at DESC, id DESC).
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*MovementWithProduct, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	// ListAll pagina los movimientos de todos los productos, mismo orden.
	ListAll(ctx context.Context, limit, offset int) ([]*MovementWithProduct, error)
	CountAll(ctx context.Context) (int64, error)
	// Summarize agrega el ledger por producto. Incluye productos sin
	// movimientos (totales en cero) vía LEFT JOIN.
	Summarize(ctx context.Context) ([]*StockSummaryResult, error)
	SummarizeProduct(ctx context.Context, productID string) (*StockSummaryResult, error)
}
