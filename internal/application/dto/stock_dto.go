package dto

import "time"

// UpdateStockRequest body para PUT /api/products/:id/stock (y variantes por
// sku/nombre). Stock es puntero para distinguir "ausente" de cero.
// Type presente => movimiento dirigido (in|out) con Stock como cantidad;
// Type ausente => Stock es el valor objetivo absoluto.
type UpdateStockRequest struct {
	Stock *int64 `json:"stock" validate:"required"`
	Note  string `json:"note,omitempty" validate:"max=500"`
	Type  string `json:"type,omitempty" validate:"omitempty,oneof=in out"`
}

// Validate valida el body. El valor de stock debe ser numérico no negativo.
func (r *UpdateStockRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return nil
}

// MutationResultDTO respuesta de una mutación de stock.
type MutationResultDTO struct {
	ProductID  string `json:"product_id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	MovementID string `json:"movement_id,omitempty"`
	OldStock   int64  `json:"old_stock"`
	NewStock   int64  `json:"new_stock"`
	Type       string `json:"type,omitempty"`
	Quantity   int64  `json:"quantity"`
	Unchanged  bool   `json:"unchanged"`
}

// StockMovementDTO entrada del ledger enriquecida para el historial.
// OldStock/NewStock son exactos: se derivan del resulting_stock guardado al
// escribir el movimiento, no del contador vivo.
type StockMovementDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	Note        string    `json:"note,omitempty"`
	OldStock    int64     `json:"old_stock"`
	NewStock    int64     `json:"new_stock"`
	CreatedBy   *string   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockHistoryDTO página de historial de movimientos.
type StockHistoryDTO struct {
	Docs []StockMovementDTO `json:"docs"`
	PageResponse
}

// StockSummaryDTO rollup por producto del ledger. DerivedStock es la suma del
// ledger; CurrentStock el contador vivo. Si difieren hay drift: se reporta,
// nunca se reconcilia automáticamente.
type StockSummaryDTO struct {
	ProductID    string     `json:"product_id"`
	ProductName  string     `json:"product_name"`
	SKU          string     `json:"sku"`
	TotalIn      int64      `json:"total_in"`
	TotalOut     int64      `json:"total_out"`
	DerivedStock int64      `json:"derived_stock"`
	CurrentStock int64      `json:"current_stock"`
	Drift        int64      `json:"drift"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}
