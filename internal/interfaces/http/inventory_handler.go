package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// InventoryHandler maneja el libro de productos terminados (protegido).
type InventoryHandler struct {
	engine *inventory.StockEngine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.StockEngine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Stock saldos actuales de todos los productos activos.
// GET /api/inventory/stock
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	if !Actor(c).Can(entity.CapInventoryView) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a inventario"})
	}
	items, err := h.engine.StockOverview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stock": items})
}

// Movements historial del libro de un producto, más reciente primero.
// GET /api/inventory/products/:id/movements?from=&to=&limit=&offset=
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	if !Actor(c).Can(entity.CapInventoryView) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a inventario"})
	}
	var req dto.MovementHistoryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		req.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		req.To = &t
	}
	movs, err := h.engine.MovementHistory(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movements": movs})
}

// Adjust asienta un ajuste manual de stock (delta con signo).
// POST /api/inventory/adjustments
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	actor := Actor(c)
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.Adjust(c.Context(), actor.UserID, actor.Can(entity.CapInventoryAdjust), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:           mov.ID,
		Type:         mov.Type,
		Quantity:     mov.Quantity,
		BalanceAfter: mov.BalanceAfter,
		CreatedBy:    mov.CreatedBy,
		CreatedAt:    mov.CreatedAt,
	})
}
