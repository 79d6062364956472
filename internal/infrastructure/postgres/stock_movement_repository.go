package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). La tabla stock_movements es append-only: este adaptador no
// expone UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, reason, note, resulting_stock, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Reason, movement.Note, movement.ResultingStock,
		movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.type, m.quantity, m.reason, m.note,
	       m.resulting_stock, m.created_by, m.created_at, p.name, p.sku
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

// ListByProduct pagina los movimientos de un producto, más recientes primero.
// El desempate por id mantiene el orden estable entre páginas.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*repository.MovementWithProduct, error) {
	query := movementSelect + `
	WHERE m.product_id = $1
	ORDER BY m.created_at DESC, m.id DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, productID, limit, offset)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return total, nil
}

// ListAll pagina los movimientos de todos los productos, más recientes primero.
func (r *StockMovementRepo) ListAll(ctx context.Context, limit, offset int) ([]*repository.MovementWithProduct, error) {
	query := movementSelect + `
	ORDER BY m.created_at DESC, m.id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// CountAll cuenta todos los movimientos del ledger.
func (r *StockMovementRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

const summarySelect = `
	SELECT p.id, p.name, p.sku, p.stock,
	       COALESCE(SUM(CASE WHEN m.type = 'in'  THEN m.quantity ELSE 0 END), 0) AS total_in,
	       COALESCE(SUM(CASE WHEN m.type = 'out' THEN m.quantity ELSE 0 END), 0) AS total_out,
	       MAX(m.created_at) AS last_updated
	FROM products p
	LEFT JOIN stock_movements m ON m.product_id = p.id`

// Summarize agrega el ledger por producto. El LEFT JOIN garantiza que los
// productos sin movimientos salgan con totales en cero.
func (r *StockMovementRepo) Summarize(ctx context.Context) ([]*repository.StockSummaryResult, error) {
	query := summarySelect + `
	GROUP BY p.id, p.name, p.sku, p.stock
	ORDER BY last_updated DESC NULLS LAST`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarize stock: %w", err)
	}
	defer rows.Close()
	var results []*repository.StockSummaryResult
	for rows.Next() {
		var s repository.StockSummaryResult
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.SKU, &s.CurrentStock,
			&s.TotalIn, &s.TotalOut, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		results = append(results, &s)
	}
	return results, rows.Err()
}

// SummarizeProduct agrega el ledger de un solo producto. Devuelve nil si el
// producto no existe.
func (r *StockMovementRepo) SummarizeProduct(ctx context.Context, productID string) (*repository.StockSummaryResult, error) {
	query := summarySelect + `
	WHERE p.id = $1
	GROUP BY p.id, p.name, p.sku, p.stock`
	var s repository.StockSummaryResult
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&s.ProductID, &s.ProductName, &s.SKU, &s.CurrentStock,
		&s.TotalIn, &s.TotalOut, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("summarize product: %w", err)
	}
	return &s, nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*repository.MovementWithProduct, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementWithProduct
	for rows.Next() {
		var row repository.MovementWithProduct
		m := &row.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Note,
			&m.ResultingStock, &m.CreatedBy, &m.CreatedAt, &row.ProductName, &row.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
