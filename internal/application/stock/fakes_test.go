package stock_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sandeep7070/mai-santani-backend/internal/application/stock"
	"github.com/sandeep7070/mai-santani-backend/internal/domain"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional: memTxRunner toma un snapshot
// al entrar y lo restaura si el callback falla, de modo que contador y ledger
// nunca quedan a medias (misma garantía que la tx de PostgreSQL).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	seq       int

	// inyección de fallos para los tests de atomicidad / reintento
	failMovementCreate error
	failuresLeft       int
}

func newMemStore() *memStore {
	return &memStore{products: map[string]*entity.Product{}}
}

func (s *memStore) addProduct(id, sku, name string, stockValue int64) {
	s.products[id] = &entity.Product{
		ID: id, SKU: sku, Name: name, Stock: stockValue,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// snapshot para rollback
	savedProducts := make(map[string]*entity.Product, len(r.store.products))
	for id, p := range r.store.products {
		cp := *p
		savedProducts[id] = &cp
	}
	savedLen := len(r.store.movements)

	err := fn(&memProductRepo{store: r.store}, &memMovementRepo{store: r.store})
	if err != nil {
		r.store.products = savedProducts
		r.store.movements = r.store.movements[:savedLen]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria (se usan ya bajo el lock del runner)
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(product *entity.Product) error {
	r.store.products[product.ID] = product
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Resolve(sel entity.Selector) (*entity.Product, error) {
	var matches []*entity.Product
	for _, p := range r.store.products {
		switch sel.Kind {
		case entity.SelectByID:
			if p.ID == sel.Value {
				matches = append(matches, p)
			}
		case entity.SelectBySKU:
			if p.SKU == sel.Value {
				matches = append(matches, p)
			}
		case entity.SelectByName:
			if p.Name == sel.Value {
				matches = append(matches, p)
			}
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		return nil, domain.ErrAmbiguous
	}
	cp := *matches[0]
	return &cp, nil
}

func (r *memProductRepo) ResolveForUpdate(sel entity.Selector) (*entity.Product, error) {
	return r.Resolve(sel)
}

func (r *memProductRepo) UpdateStock(productID string, stockValue int64) error {
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stockValue
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	if r.store.failMovementCreate != nil && r.store.failuresLeft > 0 {
		r.store.failuresLeft--
		return r.store.failMovementCreate
	}
	if movement.ID == "" {
		r.store.seq++
		movement.ID = fmt.Sprintf("mov-%04d", r.store.seq)
	}
	cp := *movement
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*repository.MovementWithProduct, error) {
	return r.page(r.filter(productID), limit, offset), nil
}

func (r *memMovementRepo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	return int64(len(r.filter(productID))), nil
}

func (r *memMovementRepo) ListAll(ctx context.Context, limit, offset int) ([]*repository.MovementWithProduct, error) {
	return r.page(r.filter(""), limit, offset), nil
}

func (r *memMovementRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.store.movements)), nil
}

func (r *memMovementRepo) Summarize(ctx context.Context) ([]*repository.StockSummaryResult, error) {
	var results []*repository.StockSummaryResult
	var ids []string
	for id := range r.store.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s, err := r.SummarizeProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, nil
}

func (r *memMovementRepo) SummarizeProduct(ctx context.Context, productID string) (*repository.StockSummaryResult, error) {
	p, ok := r.store.products[productID]
	if !ok {
		return nil, nil
	}
	result := &repository.StockSummaryResult{
		ProductID:    p.ID,
		ProductName:  p.Name,
		SKU:          p.SKU,
		CurrentStock: p.Stock,
	}
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Type == entity.MovementTypeIn {
			result.TotalIn += m.Quantity
		} else {
			result.TotalOut += m.Quantity
		}
		if result.LastUpdated == nil || m.CreatedAt.After(*result.LastUpdated) {
			t := m.CreatedAt
			result.LastUpdated = &t
		}
	}
	return result, nil
}

func (r *memMovementRepo) filter(productID string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if productID == "" || m.ProductID == productID {
			out = append(out, m)
		}
	}
	// orden (created_at DESC, id DESC), como la consulta SQL
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[j].ID) > 0
	})
	return out
}

func (r *memMovementRepo) page(movs []*entity.StockMovement, limit, offset int) []*repository.MovementWithProduct {
	var out []*repository.MovementWithProduct
	for i := offset; i < len(movs) && i < offset+limit; i++ {
		m := *movs[i]
		row := &repository.MovementWithProduct{Movement: m}
		if p, ok := r.store.products[m.ProductID]; ok {
			row.ProductName = p.Name
			row.ProductSKU = p.SKU
		}
		out = append(out, row)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Runner que falla con ErrConflict un número fijo de veces antes de delegar,
// para probar el reintento interno del coordinador.
// ──────────────────────────────────────────────────────────────────────────────

type conflictTxRunner struct {
	inner     stock.TxRunner
	conflicts int
	calls     int
}

func (r *conflictTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.calls++
	if r.conflicts > 0 {
		r.conflicts--
		return fmt.Errorf("%w: simulated serialization failure", domain.ErrConflict)
	}
	return r.inner.Run(ctx, fn)
}
