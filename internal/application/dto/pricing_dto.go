package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceResponse precio elegible para el rol+canal del request, ordenado
// ascendente por monto. El caller elige explícitamente el price_id por línea.
type PriceResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Amount     decimal.Decimal `json:"amount"`
	Channel    string          `json:"channel"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
}
