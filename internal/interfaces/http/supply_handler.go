package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// SupplyHandler maneja el libro de insumos (protegido).
type SupplyHandler struct {
	engine *supply.DeductionEngine
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(engine *supply.DeductionEngine) *SupplyHandler {
	return &SupplyHandler{engine: engine}
}

// Stock saldos actuales de todos los insumos activos.
// GET /api/supplies/stock
func (h *SupplyHandler) Stock(c *fiber.Ctx) error {
	if !Actor(c).Can(entity.CapInventoryView) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a inventario"})
	}
	items, err := h.engine.StockOverview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stock": items})
}

// LowStock insumos en o bajo su mínimo (incluye saldos negativos).
// GET /api/supplies/low-stock
func (h *SupplyHandler) LowStock(c *fiber.Ctx) error {
	if !Actor(c).Can(entity.CapInventoryView) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a inventario"})
	}
	items, err := h.engine.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stock": items})
}

// Intake entrada de insumos por compra.
// POST /api/supplies/intake
func (h *SupplyHandler) Intake(c *fiber.Ctx) error {
	actor := Actor(c)
	if !actor.Can(entity.CapSupplyManage) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin gestión de insumos"})
	}
	var in dto.AddSupplyStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.AddStock(c.Context(), actor.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"movement_id":   mov.ID,
		"balance_after": mov.BalanceAfter,
	})
}

// Adjust ajuste manual de insumo (delta con signo).
// POST /api/supplies/adjustments
func (h *SupplyHandler) Adjust(c *fiber.Ctx) error {
	actor := Actor(c)
	if !actor.Can(entity.CapSupplyManage) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin gestión de insumos"})
	}
	var in dto.AdjustSupplyStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.AdjustStock(c.Context(), actor.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"movement_id":   mov.ID,
		"balance_after": mov.BalanceAfter,
	})
}
