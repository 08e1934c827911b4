package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea pedida: producto, precio elegido explícitamente y
// cantidad. Nunca hay precio por defecto implícito.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	PriceID   string `json:"price_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateSaleRequest request de creación de venta.
// DueDate es obligatoria si PaymentMethod=CREDIT y debe ser hoy o posterior.
// IsNewKitUnit indica unidad nueva (no recarga) para el descuento de kit.
type CreateSaleRequest struct {
	Channel       string            `json:"channel"`
	PaymentMethod string            `json:"payment_method"`
	CustomerID    *string           `json:"customer_id"`
	DueDate       *string           `json:"due_date"` // formato 2006-01-02
	SoldAt        *time.Time        `json:"sold_at"`
	IsNewKitUnit  bool              `json:"is_new_kit_unit"`
	Items         []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta con el snapshot de precio.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	PriceID       string          `json:"price_id"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot"`
	Quantity      int64           `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con ítems y total calculado.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	Channel       string             `json:"channel"`
	PaymentMethod string             `json:"payment_method"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	SyncStatus    string             `json:"sync_status"`
	DueDate       *string            `json:"due_date,omitempty"`
	SoldAt        time.Time          `json:"sold_at"`
	Items         []SaleItemResponse `json:"items"`
}
