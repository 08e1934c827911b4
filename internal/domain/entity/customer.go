package entity

import "time"

// Tipos de cliente.
const (
	CustomerRetail   = "RETAIL"
	CustomerAgent    = "AGEN"
	CustomerReseller = "RESELLER"
)

// Customer representa un cliente. Para este núcleo es casi de solo lectura:
// el orquestador consulta IsBlacklisted y el barrido de vencidos es el único
// que lo marca.
type Customer struct {
	ID              string
	Name            string
	Type            string
	Phone           string
	Address         string
	IsBlacklisted   bool
	BlacklistReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
