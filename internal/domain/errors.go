package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos estables; nada en este paquete conoce HTTP.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPriceNotAllowed   = errors.New("precio no permitido para el rol o canal")
	ErrPriceMismatch     = errors.New("el precio no corresponde al producto")
	ErrAlreadyCancelled  = errors.New("la venta ya fue cancelada")
	ErrBlacklisted       = errors.New("cliente en lista negra")
	ErrSyncConflict      = errors.New("conflicto de stock al sincronizar")
)
