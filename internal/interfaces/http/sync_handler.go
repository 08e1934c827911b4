package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/sync"
)

// SyncHandler maneja la sincronización offline (protegido).
type SyncHandler struct {
	uc *sync.Processor
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *sync.Processor) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Push procesa un lote de transacciones offline. Devuelve un resultado por
// transacción; el lote entero nunca falla por una transacción mala.
// POST /api/sync/push
func (h *SyncHandler) Push(c *fiber.Ctx) error {
	var in dto.PushRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	results, err := h.uc.PushBatch(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// ListConflicts entradas de la cola esperando decisión.
// GET /api/sync/conflicts
func (h *SyncHandler) ListConflicts(c *fiber.Ctx) error {
	entries, err := h.uc.ListConflicts(c.Context(), Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"conflicts": entries})
}

// ResolveConflict aplica la decisión del admin (approve | reject).
// POST /api/sync/conflicts/:id/resolve
func (h *SyncHandler) ResolveConflict(c *fiber.Ctx) error {
	var in dto.ResolveConflictRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ResolveConflict(c.Context(), Actor(c), c.Params("id"), in.Decision)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
