package dto

// AddSupplyStockRequest entrada de insumos por compra.
type AddSupplyStockRequest struct {
	SupplyID   string `json:"supply_id"`
	Quantity   int64  `json:"quantity"`
	PurchaseID string `json:"purchase_id"`
}

// AdjustSupplyStockRequest ajuste manual; Quantity lleva signo.
type AdjustSupplyStockRequest struct {
	SupplyID string `json:"supply_id"`
	Quantity int64  `json:"quantity"`
}

// SupplyStockItem saldo actual de un insumo.
type SupplyStockItem struct {
	SupplyID     string `json:"supply_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
	LowStock     bool   `json:"low_stock"`
}
