package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sandeep7070/mai-santani-backend/internal/application/dto"
	"github.com/sandeep7070/mai-santani-backend/internal/application/stock"
	"github.com/sandeep7070/mai-santani-backend/internal/domain"
	"github.com/sandeep7070/mai-santani-backend/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del motor de stock: mutaciones por
// id/sku/nombre, historial y resumen agregado.
type StockHandler struct {
	update  *stock.UpdateStockUseCase
	history *stock.StockHistoryUseCase
	summary *stock.StockSummaryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	update *stock.UpdateStockUseCase,
	history *stock.StockHistoryUseCase,
	summary *stock.StockSummaryUseCase,
) *StockHandler {
	return &StockHandler{update: update, history: history, summary: summary}
}

// UpdateStockByID godoc
// @Summary      Actualizar stock por id
// @Description  Con type (in|out) el valor de stock es la cantidad del movimiento;
//               sin type, stock es el valor objetivo absoluto.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Product ID"
// @Param        body  body  dto.UpdateStockRequest  true  "stock, note?, type?"
// @Success      200   {object}  dto.MutationResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *StockHandler) UpdateStockByID(c *fiber.Ctx) error {
	return h.applyMutation(c, entity.ByID(c.Params("id")), true)
}

// UpdateStockBySKU godoc
// @Summary      Actualizar stock por SKU (valor absoluto)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        sku   path  string                  true  "SKU"
// @Param        body  body  dto.UpdateStockRequest  true  "stock, note?"
// @Success      200   {object}  dto.MutationResultDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku}/stock [put]
func (h *StockHandler) UpdateStockBySKU(c *fiber.Ctx) error {
	return h.applyMutation(c, entity.BySKU(c.Params("sku")), false)
}

// UpdateStockByName godoc
// @Summary      Actualizar stock por nombre (valor absoluto)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        name  path  string                  true  "Nombre del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "stock, note?"
// @Success      200   {object}  dto.MutationResultDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/name/{name}/stock [put]
func (h *StockHandler) UpdateStockByName(c *fiber.Ctx) error {
	return h.applyMutation(c, entity.ByName(c.Params("name")), false)
}

// applyMutation parsea y valida el body, decide la variante (Directed si trae
// type y la ruta lo permite, Absolute si no) UNA sola vez, y delega al
// coordinador. El valor negativo o no numérico se rechaza aquí, antes de
// llegar al caso de uso.
func (h *StockHandler) applyMutation(c *fiber.Ctx, sel entity.Selector, allowType bool) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere un valor de stock numérico y type in|out opcional"})
	}
	if *in.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el stock no puede ser negativo"})
	}
	if in.Type != "" && !allowType {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type no está soportado en esta ruta"})
	}

	mut := stock.Mutation{
		Kind:  stock.MutationAbsolute,
		Value: *in.Stock,
		Note:  in.Note,
		Actor: GetActor(c),
	}
	if in.Type != "" {
		mut.Kind = stock.MutationDirected
		mut.Type = in.Type
	}

	result, err := h.update.ApplyMutation(c.Context(), sel, mut)
	if err != nil {
		return respondError(c, err)
	}

	message := "Product stock updated successfully"
	if result.Unchanged {
		message = "Product stock unchanged"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"data": dto.MutationResultDTO{
			ProductID:  result.ProductID,
			SKU:        result.SKU,
			Name:       result.Name,
			MovementID: result.MovementID,
			OldStock:   result.OldStock,
			NewStock:   result.NewStock,
			Type:       result.Type,
			Quantity:   result.Quantity,
			Unchanged:  result.Unchanged,
		},
	})
}

// ProductHistory godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Produce      json
// @Param        id     path   string  true   "Product ID"
// @Param        page   query  int     false  "Página (>=1)"
// @Param        limit  query  int     false  "Tamaño de página (1-100)"
// @Success      200  {object}  dto.StockHistoryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/history [get]
func (h *StockHandler) ProductHistory(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	result, err := h.history.History(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

// HistoryAll godoc
// @Summary      Historial global de movimientos
// @Tags         stock
// @Produce      json
// @Param        page   query  int  false  "Página (>=1)"
// @Param        limit  query  int  false  "Tamaño de página (1-100)"
// @Success      200  {object}  dto.StockHistoryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/history [get]
func (h *StockHandler) HistoryAll(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	result, err := h.history.HistoryAll(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

// ProductSummary godoc
// @Summary      Resumen agregado del ledger de un producto
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.StockSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/summary [get]
func (h *StockHandler) ProductSummary(c *fiber.Ctx) error {
	result, err := h.summary.SummarizeProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

// Summary godoc
// @Summary      Resumen agregado del ledger de todos los productos
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.StockSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	result, err := h.summary.Summarize(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}
	if page.Page < 0 || page.Limit < 0 {
		return page, domain.ErrInvalidInput
	}
	return page, nil
}

// respondError mapea cada error de dominio a un status y código estables, de
// modo que los callers puedan distinguir stock insuficiente de not-found, etc.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STOCK", Message: "el stock no puede quedar negativo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrAmbiguous):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "AMBIGUOUS_SELECTOR", Message: "más de un producto coincide con el selector"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "almacenamiento no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
