package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelPlant = "PLANTA" // venta directa en planta, siempre en línea
	ChannelRoute = "RUTA"   // venta en ruta, el cliente puede operar offline
)

// Estados de una venta. La única transición legal desde completed es cancelled.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Estados de pago (ortogonales al estado de la venta).
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusOverdue = "overdue"
)

// Estados de sincronización offline.
const (
	SyncStatusPending    = "pending"
	SyncStatusProcessing = "processing"
	SyncStatusSynced     = "synced"
	SyncStatusFailed     = "failed"
	SyncStatusConflict   = "conflict"
)

// Métodos de pago. CREDIT exige due_date y arranca con payment_status=unpaid.
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
	PaymentCredit   = "CREDIT"
)

// Sale representa una transacción de venta con sus ítems.
// Se crea en una sola unidad atómica junto con sus ítems y todos los
// movimientos de inventario resultantes.
type Sale struct {
	ID            string
	InvoiceNumber string
	CustomerID    *string
	Channel       string
	PaymentMethod string
	TotalAmount   decimal.Decimal
	Status        string
	PaymentStatus string
	SyncStatus    string
	DueDate       *time.Time
	CreatedBy     string
	SoldAt        time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*SaleItem
}

// SaleItem es una línea de venta. PriceSnapshot copia el monto del precio al
// momento de la venta; cambios posteriores del Price no la afectan.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	PriceID       string
	PriceSnapshot decimal.Decimal
	Quantity      int64
	Subtotal      decimal.Decimal // PriceSnapshot × Quantity
}

// ValidChannel valida un canal de venta.
func ValidChannel(channel string) bool {
	return channel == ChannelPlant || channel == ChannelRoute
}

// ValidPaymentMethod valida un método de pago.
func ValidPaymentMethod(method string) bool {
	return method == PaymentCash || method == PaymentTransfer || method == PaymentCredit
}

// InvoicePrefix devuelve el prefijo de factura del canal.
func InvoicePrefix(channel string) string {
	if channel == ChannelPlant {
		return "PLT"
	}
	return "RTA"
}

// FormatInvoiceNumber arma el número {prefijo}-{fecha}-{secuencia con ceros}.
// La secuencia es el conteo de ventas del mismo canal creadas ese día, más uno.
func FormatInvoiceNumber(channel string, day time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%s-%04d", InvoicePrefix(channel), day.Format("20060102"), sequence)
}

// SaleMovementType devuelve el tipo de movimiento de salida según el canal.
func SaleMovementType(channel string) string {
	if channel == ChannelPlant {
		return MovementSalePlant
	}
	return MovementSaleRoute
}
