package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceChannelAll: el precio aplica a cualquier canal de venta.
const PriceChannelAll = "ALL"

// Price representa un precio que ciertos roles pueden usar para un producto
// en un canal. Los ítems de venta copian el monto como snapshot: cambiar un
// Price después nunca altera ventas ya registradas.
type Price struct {
	ID         string
	ProductID  string
	Amount     decimal.Decimal
	Channel    string // PLANTA | RUTA | ALL
	IsActive   bool
	ValidFrom  time.Time
	ValidUntil *time.Time // nil = sin vencimiento
	Roles      []Role     // roles autorizados a usar este precio
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EligibleFor evalúa las cuatro condiciones de elegibilidad: activo, canal
// (igual o comodín ALL), ventana de validez vigente y rol autorizado.
func (p *Price) EligibleFor(role Role, channel string, now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.Channel != PriceChannelAll && p.Channel != channel {
		return false
	}
	if now.Before(p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && !p.ValidUntil.After(now) {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
