package entity

import "time"

// Supply representa un insumo / materia prima (bolsas plásticas, tapas, envases vacíos).
// Igual que Product, su stock se deriva del libro de movimientos (SupplyMovement).
type Supply struct {
	ID   string
	SKU  string
	Name string
	Unit string
	// LinkedProductID vincula el insumo a un producto: cada venta del producto
	// descuenta DeductPerSale × cantidad vendida de este insumo.
	LinkedProductID *string
	DeductPerSale   int64
	// KitComponent marca insumos que forman el kit de unidad nueva
	// (envase vacío + tapa); se descuentan 1×cantidad solo cuando la venta
	// es de unidad nueva, no recarga.
	KitComponent bool
	MinStock     int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
