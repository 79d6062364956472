package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeep7070/mai-santani-backend/internal/domain"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/repository"
)

// maxRetries reintentos internos ante domain.ErrConflict (fallo de
// serialización o deadlock detectado por PostgreSQL).
const maxRetries = 3

// MutationKind distingue las dos formas de expresar una mutación de stock.
// Se decide UNA sola vez en el borde HTTP; aguas abajo no se vuelve a inferir.
type MutationKind int

const (
	// MutationDirected movimiento explícito: dirección + cantidad.
	MutationDirected MutationKind = iota + 1
	// MutationAbsolute estado final deseado: dirección y cantidad se derivan
	// contra el stock actual dentro de la transacción.
	MutationAbsolute
)

// Mutation es la variante etiquetada que entra al coordinador.
// Para Directed, Type es in|out y Value la cantidad (>= 0).
// Para Absolute, Value es el stock objetivo (>= 0) y Type se ignora.
type Mutation struct {
	Kind   MutationKind
	Type   string
	Value  int64
	Reason string
	Note   string
	Actor  *string // nil = sin contexto autenticado; nunca se fabrica un actor
}

// MutationResult resultado de una mutación confirmada (o no-op).
type MutationResult struct {
	ProductID  string
	SKU        string
	Name       string
	MovementID string // vacío cuando Unchanged
	OldStock   int64
	NewStock   int64
	Type       string // in|out; vacío cuando Unchanged
	Quantity   int64
	Unchanged  bool // delta cero: sin escritura de contador ni de ledger
}

// UpdateStockUseCase coordina las mutaciones de stock: resuelve el producto,
// normaliza la mutación a (dirección, cantidad), valida invariantes y confirma
// contador + ledger como una sola transacción con bloqueo de fila
// (SELECT FOR UPDATE).
type UpdateStockUseCase struct {
	txRunner TxRunner
}

// NewUpdateStockUseCase construye el caso de uso.
func NewUpdateStockUseCase(txRunner TxRunner) *UpdateStockUseCase {
	return &UpdateStockUseCase{txRunner: txRunner}
}

// ApplyMutation aplica una mutación sobre el producto que resuelve el selector.
// Garantías: a lo sumo una escritura de contador y un append al ledger por
// llamada, ambos en la misma transacción; ante fallo no queda nada escrito.
// domain.ErrConflict se reintenta internamente hasta maxRetries veces.
func (uc *UpdateStockUseCase) ApplyMutation(ctx context.Context, sel entity.Selector, mut Mutation) (*MutationResult, error) {
	if err := validateMutation(sel, mut); err != nil {
		return nil, err
	}

	var result *MutationResult
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err = uc.applyOnce(ctx, sel, mut)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return result, err
		}
	}
	return nil, err
}

func validateMutation(sel entity.Selector, mut Mutation) error {
	if sel.Value == "" {
		return domain.ErrInvalidInput
	}
	switch sel.Kind {
	case entity.SelectByID, entity.SelectBySKU, entity.SelectByName:
	default:
		return domain.ErrInvalidInput
	}
	switch mut.Kind {
	case MutationDirected:
		if mut.Type != entity.MovementTypeIn && mut.Type != entity.MovementTypeOut {
			return domain.ErrInvalidInput
		}
		if mut.Value < 0 {
			return domain.ErrInvalidInput
		}
	case MutationAbsolute:
		if mut.Value < 0 {
			return domain.ErrInvalidStock
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// applyOnce ejecuta un intento dentro de una transacción.
func (uc *UpdateStockUseCase) applyOnce(ctx context.Context, sel entity.Selector, mut Mutation) (*MutationResult, error) {
	var result *MutationResult

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del producto: el par leer-validar-escribir queda
		// serializado por producto frente a mutaciones concurrentes.
		product, err := productRepo.ResolveForUpdate(sel)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		movType, quantity := normalize(mut, product.Stock)

		if quantity == 0 {
			result = &MutationResult{
				ProductID: product.ID,
				SKU:       product.SKU,
				Name:      product.Name,
				OldStock:  product.Stock,
				NewStock:  product.Stock,
				Unchanged: true,
			}
			return nil
		}

		if movType == entity.MovementTypeOut && quantity > product.Stock {
			return domain.ErrInsufficientStock
		}

		newStock := product.Stock + quantity
		if movType == entity.MovementTypeOut {
			newStock = product.Stock - quantity
		}
		if newStock < 0 {
			return domain.ErrInvalidStock
		}

		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		now := time.Now()
		movement := &entity.StockMovement{
			ProductID:      product.ID,
			Type:           movType,
			Quantity:       quantity,
			Reason:         reasonFor(mut),
			Note:           noteFor(mut, movType, quantity, product.Stock, newStock),
			ResultingStock: newStock,
			CreatedBy:      mut.Actor,
			CreatedAt:      now,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}

		result = &MutationResult{
			ProductID:  product.ID,
			SKU:        product.SKU,
			Name:       product.Name,
			MovementID: movement.ID,
			OldStock:   product.Stock,
			NewStock:   newStock,
			Type:       movType,
			Quantity:   quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// normalize reduce ambas formas a la pareja canónica (tipo, cantidad).
// Cantidad 0 significa no-op.
func normalize(mut Mutation, currentStock int64) (string, int64) {
	if mut.Kind == MutationDirected {
		return mut.Type, mut.Value
	}
	diff := mut.Value - currentStock
	switch {
	case diff > 0:
		return entity.MovementTypeIn, diff
	case diff < 0:
		return entity.MovementTypeOut, -diff
	default:
		return "", 0
	}
}

func reasonFor(mut Mutation) string {
	if mut.Reason != "" {
		return mut.Reason
	}
	if mut.Kind == MutationDirected {
		return "manual adjustment"
	}
	return "stock update"
}

func noteFor(mut Mutation, movType string, quantity, oldStock, newStock int64) string {
	if mut.Note != "" {
		return mut.Note
	}
	if mut.Kind == MutationDirected {
		return fmt.Sprintf("Stock %s of %d", movType, quantity)
	}
	return fmt.Sprintf("Stock updated from %d to %d", oldStock, newStock)
}
