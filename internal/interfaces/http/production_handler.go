package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/production"
)

// ProductionHandler maneja los registros de producción (protegido).
type ProductionHandler struct {
	uc *production.Recorder
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.Recorder) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create registra una corrida de producción con su entrada de producto y
// consumo de insumos, atómico.
// POST /api/production
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.RecordProduction(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductionResponse{
		ID:              record.ID,
		ProductID:       record.ProductID,
		Quantity:        record.Quantity,
		MachineOnAt:     record.MachineOnAt,
		MachineOffAt:    record.MachineOffAt,
		DurationMinutes: record.DurationMinutes(),
		Notes:           record.Notes,
	})
}

// List corridas en un rango de fechas (por defecto, las últimas 24 horas).
// GET /api/production?from=&to=
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	now := time.Now()
	from := now.Add(-24 * time.Hour)
	to := now
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		to = t
	}

	records, err := h.uc.ListBetween(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductionResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ProductionResponse{
			ID:              r.ID,
			ProductID:       r.ProductID,
			Quantity:        r.Quantity,
			MachineOnAt:     r.MachineOnAt,
			MachineOffAt:    r.MachineOffAt,
			DurationMinutes: r.DurationMinutes(),
			Notes:           r.Notes,
		})
	}
	return c.JSON(fiber.Map{"records": out})
}
