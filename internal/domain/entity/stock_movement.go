package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement representa una entrada del ledger de stock. Inmutable una vez
// creada: las correcciones se hacen con movimientos adicionales, nunca editando.
type StockMovement struct {
	ID             string
	ProductID      string
	Type           string // in, out
	Quantity       int64  // siempre > 0; el signo lo da Type
	Reason         string // "manual adjustment", "stock update", etc.
	Note           string
	ResultingStock int64   // stock del producto justo después del movimiento
	CreatedBy      *string // actor opcional; nil cuando no hay contexto autenticado
	CreatedAt      time.Time
}
