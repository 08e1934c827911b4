package entity

import (
	"encoding/json"
	"time"
)

// Acción registrada en la cola de sincronización.
const SyncActionCreateSale = "CREATE_SALE"

// Reintentos fallidos permitidos antes de pasar la entrada a failed.
const SyncMaxRetries = 3

// SyncQueueEntry es una transacción offline que no pudo conciliarse
// automáticamente contra el stock actual y espera decisión del admin.
// Payload guarda la transacción original completa, serializada.
type SyncQueueEntry struct {
	ID           string
	UserID       string
	Action       string
	Payload      json.RawMessage
	Status       string // pending | processing | synced | failed | conflict
	RetryCount   int
	ErrorMessage string
	SyncedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
