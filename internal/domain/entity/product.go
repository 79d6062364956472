package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su contador de stock vivo.
// Stock solo se modifica vía el motor de movimientos; SKU y Name tienen índice
// único, por lo que los tres selectores (id, sku, name) resuelven a la misma fila.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string // nombre único, usado como selector alternativo
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario de referencia
	Stock       int64           // contador vivo; invariante: Stock >= 0
	Unstock     bool            // producto marcado como no vendible
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
