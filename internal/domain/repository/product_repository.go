package repository

import "github.com/sandeep7070/mai-santani-backend/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Resolve y ResolveForUpdate aceptan cualquier selector (id, sku, name);
// devuelven nil cuando no hay coincidencia y domain.ErrAmbiguous si el
// selector coincide con más de una fila.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Resolve(sel entity.Selector) (*entity.Product, error)
	// ResolveForUpdate resuelve el selector y bloquea la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	ResolveForUpdate(sel entity.Selector) (*entity.Product, error)
	// UpdateStock escribe el contador vivo. Usado únicamente por el motor de
	// movimientos dentro de la misma transacción que el append al ledger.
	UpdateStock(productID string, stock int64) error
	List(limit, offset int) ([]*entity.Product, error)
}
