package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain"
)

// respondError mapea los errores de dominio a códigos HTTP estables.
// Lo que la API promete: INSUFFICIENT_STOCK y VALIDATION son 422,
// PRICE_NOT_ALLOWED 403, ALREADY_CANCELLED y SYNC_CONFLICT 409.
func respondError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case domain.ErrPriceNotAllowed:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PRICE_NOT_ALLOWED", Message: err.Error()})
	case domain.ErrPriceMismatch:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRICE_MISMATCH", Message: err.Error()})
	case domain.ErrAlreadyCancelled:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: err.Error()})
	case domain.ErrBlacklisted:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CUSTOMER_BLACKLISTED", Message: err.Error()})
	case domain.ErrSyncConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
