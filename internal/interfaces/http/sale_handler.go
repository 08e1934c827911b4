package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc *sales.Orchestrator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.Orchestrator) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create registra una venta completa (venta + ítems + movimientos, atómico).
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateSale(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sales.ToSaleResponse(sale))
}

// GetByID obtiene una venta con sus ítems.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToSaleResponse(sale))
}

// Cancel cancela una venta asentando movimientos RETURN.
// POST /api/sales/:id/cancel
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.uc.CancelSale(c.Context(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToSaleResponse(sale))
}

// MarkPaid marca una venta como pagada.
// POST /api/sales/:id/pay
func (h *SaleHandler) MarkPaid(c *fiber.Ctx) error {
	if err := h.uc.MarkAsPaid(c.Context(), Actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt genera el comprobante PDF de la venta.
// GET /api/sales/:id/receipt
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="comprobante.pdf"`)
	return c.Send(pdfBytes)
}
