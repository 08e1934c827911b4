package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/auth"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
)

// AuthHandler maneja las peticiones de autenticación (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica al usuario y devuelve un token JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
