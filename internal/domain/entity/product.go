package entity

import "time"

// Product representa un producto terminado de la planta (bolsa de hielo, botellón, etc.).
// El stock NUNCA se guarda como contador en esta tabla: se deriva del libro de
// movimientos (InventoryMovement); ver el motor de inventario.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	Unit      string // "bolsa", "botellón", "paquete"
	WeightKG  float64
	MinStock  int64 // umbral para alertas de stock bajo
	// ReturnableContainer marca productos de envase retornable (botellón):
	// la primera venta de una unidad nueva consume además envase vacío + tapa
	// del stock de insumos (solo si el request lo indica, no por el SKU).
	ReturnableContainer bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
