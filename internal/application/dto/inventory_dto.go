package dto

import "time"

// AdjustStockRequest ajuste manual de stock de producto; Quantity lleva signo.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes"`
}

// StockItem saldo actual de un producto, derivado del libro.
type StockItem struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
	LowStock     bool   `json:"low_stock"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	BalanceAfter  int64     `json:"balance_after"`
	ReferenceKind string    `json:"reference_kind,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementHistoryRequest filtros del historial.
type MovementHistoryRequest struct {
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	PageRequest
}
