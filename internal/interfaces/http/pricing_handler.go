package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/pricing"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// PricingHandler expone los precios visibles para el rol del token (protegido).
type PricingHandler struct {
	resolver *pricing.Resolver
}

// NewPricingHandler construye el handler.
func NewPricingHandler(resolver *pricing.Resolver) *PricingHandler {
	return &PricingHandler{resolver: resolver}
}

// Available precios elegibles para rol+canal, ascendente por monto. El
// primero es el sugerido; la venta siempre exige price_id explícito.
// GET /api/prices?channel=PLANTA&product_id=...
func (h *PricingHandler) Available(c *fiber.Ctx) error {
	actor := Actor(c)
	if !actor.Can(entity.CapPricesView) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a precios"})
	}

	channel := c.Query("channel")
	if !entity.ValidChannel(channel) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "channel debe ser PLANTA o RUTA"})
	}
	if !actor.CanAccessChannel(channel) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso al canal"})
	}

	prices, err := h.resolver.AvailablePrices(c.Context(), actor.Role, channel, c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"prices": prices})
}
