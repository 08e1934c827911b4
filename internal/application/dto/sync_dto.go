package dto

import "time"

// OfflineTransaction una transacción creada por un cliente offline.
// LocalID es el id de correlación asignado por el cliente.
type OfflineTransaction struct {
	LocalID       string            `json:"local_id"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	CustomerID    *string           `json:"customer_id"`
	DueDate       *string           `json:"due_date"`
	SoldAt        *time.Time        `json:"sold_at"`
	IsNewKitUnit  bool              `json:"is_new_kit_unit"`
}

// PushRequest lote de transacciones offline.
type PushRequest struct {
	Transactions []OfflineTransaction `json:"transactions"`
}

// Estados de resultado por transacción.
const (
	PushStatusSynced   = "synced"
	PushStatusConflict = "conflict"
	PushStatusFailed   = "failed"
)

// PushResult resultado de una transacción del lote, en el orden del request.
type PushResult struct {
	LocalID       string `json:"local_id"`
	Status        string `json:"status"`
	SaleID        string `json:"sale_id,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	QueueID       string `json:"queue_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Decisiones del admin sobre una entrada en conflicto.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ResolveConflictRequest decisión sobre una entrada de la cola.
type ResolveConflictRequest struct {
	Decision string `json:"decision"`
}

// ResolveConflictResponse resultado de la resolución.
type ResolveConflictResponse struct {
	Status string `json:"status"`
	SaleID string `json:"sale_id,omitempty"`
}

// SyncQueueEntryResponse entrada de la cola para revisión del admin.
type SyncQueueEntryResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"`
	RetryCount   int       `json:"retry_count"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Payload      any       `json:"payload"`
	CreatedAt    time.Time `json:"created_at"`
}
