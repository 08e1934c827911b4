package repository

import "github.com/tu-usuario/planta-pos/internal/domain/entity"

// SyncQueueRepository define el puerto de la cola de sincronización offline.
type SyncQueueRepository interface {
	Create(entry *entity.SyncQueueEntry) error
	GetByID(id string) (*entity.SyncQueueEntry, error)
	Update(entry *entity.SyncQueueEntry) error
	ListByStatus(status string) ([]*entity.SyncQueueEntry, error)
}
