package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sandeep7070/mai-santani-backend/internal/domain"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, price, cost, stock, unstock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, cost, stock, unstock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description,
		product.Price, product.Cost, product.Stock, product.Unstock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.one(query, id)
}

// Resolve resuelve un selector (id, sku o nombre) a un producto.
func (r *ProductRepo) Resolve(sel entity.Selector) (*entity.Product, error) {
	return r.resolve(sel, false)
}

// ResolveForUpdate resuelve el selector y bloquea la fila (SELECT FOR UPDATE).
// Solo dentro de una transacción.
func (r *ProductRepo) ResolveForUpdate(sel entity.Selector) (*entity.Product, error) {
	return r.resolve(sel, true)
}

// resolve arma la consulta según el tipo de selector. Aunque sku y name tienen
// índice único, la consulta detecta duplicados en vez de elegir uno en silencio.
func (r *ProductRepo) resolve(sel entity.Selector, forUpdate bool) (*entity.Product, error) {
	var where string
	switch sel.Kind {
	case entity.SelectByID:
		where = "id = $1"
	case entity.SelectBySKU:
		where = "sku = $1"
	case entity.SelectByName:
		where = "name = $1"
	default:
		return nil, domain.ErrInvalidInput
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, err := r.q.Query(context.Background(), query, sel.Value)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var p entity.Product
	if err := scanProduct(rows, &p); err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if rows.Next() {
		return nil, domain.ErrAmbiguous
	}
	return &p, rows.Err()
}

// UpdateStock escribe el contador vivo. Lo usa solo el motor de movimientos
// dentro de la misma transacción que el append al ledger.
func (r *ProductRepo) UpdateStock(productID string, stockValue int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stockValue,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) one(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost,
		&p.Stock, &p.Unstock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func scanProduct(rows pgx.Rows, p *entity.Product) error {
	return rows.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost,
		&p.Stock, &p.Unstock, &p.CreatedAt, &p.UpdatedAt,
	)
}
