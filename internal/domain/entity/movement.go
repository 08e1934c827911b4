package entity

import "time"

// Tipos de movimiento del libro de productos terminados.
const (
	MovementProductionIn = "PRODUCTION_IN" // entrada por producción
	MovementSalePlant    = "SALE_PLANT"    // venta en planta
	MovementSaleRoute    = "SALE_ROUTE"    // venta en ruta
	MovementAdjustment   = "ADJUSTMENT"    // ajuste manual (delta con signo)
	MovementReturn       = "RETURN"        // retorno por cancelación de venta
)

// Tipos de movimiento del libro de insumos.
const (
	SupplyMovementPurchaseIn    = "PURCHASE_IN"    // entrada por compra
	SupplyMovementSaleOut       = "SALE_OUT"       // consumo por venta
	SupplyMovementProductionOut = "PRODUCTION_OUT" // consumo por producción
	SupplyMovementAdjustment    = "ADJUSTMENT"
)

// Kinds de referencia polimórfica: qué originó un movimiento.
// Discriminador cerrado en lugar de un tipo dinámico abierto.
const (
	ReferenceSale       = "sale"
	ReferenceProduction = "production"
	ReferencePurchase   = "purchase"
)

// MovementReference identifica la operación que originó un movimiento.
type MovementReference struct {
	Kind string // sale | production | purchase
	ID   string
}

// InventoryMovement es una entrada inmutable del libro de productos terminados.
// Quantity lleva signo (entradas positivas, salidas negativas) y BalanceAfter
// es el saldo resultante; una vez escrito, nunca se edita: las correcciones
// son movimientos nuevos (ADJUSTMENT / RETURN).
// El orden total del libro por producto es (CreatedAt, Seq).
type InventoryMovement struct {
	ID            string
	Seq           int64 // secuencia de inserción, asignada por el storage
	ProductID     string
	Type          string
	Quantity      int64 // con signo
	BalanceAfter  int64
	ReferenceKind string // vacío si no aplica
	ReferenceID   string
	CreatedBy     string
	CreatedAt     time.Time
}

// SupplyMovement es la entrada equivalente del libro de insumos.
type SupplyMovement struct {
	ID            string
	Seq           int64
	SupplyID      string
	Type          string
	Quantity      int64 // con signo
	BalanceAfter  int64
	ReferenceKind string
	ReferenceID   string
	CreatedBy     string
	CreatedAt     time.Time
}

// ValidMovementType valida un tipo de movimiento de producto.
func ValidMovementType(movementType string) bool {
	switch movementType {
	case MovementProductionIn, MovementSalePlant, MovementSaleRoute,
		MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// ValidSupplyMovementType valida un tipo de movimiento de insumo.
func ValidSupplyMovementType(movementType string) bool {
	switch movementType {
	case SupplyMovementPurchaseIn, SupplyMovementSaleOut,
		SupplyMovementProductionOut, SupplyMovementAdjustment:
		return true
	}
	return false
}

// IsAddition indica si el tipo de movimiento de producto suma stock.
func IsAddition(movementType string) bool {
	return movementType == MovementProductionIn || movementType == MovementReturn
}

// IsSubtraction indica si el tipo de movimiento de producto resta stock.
// ADJUSTMENT no está en ninguna de las dos: su delta ya lleva signo.
func IsSubtraction(movementType string) bool {
	return movementType == MovementSalePlant || movementType == MovementSaleRoute
}
