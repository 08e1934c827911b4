package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.SyncQueueRepository = (*SyncQueueRepo)(nil)

// SyncQueueRepo cola de sincronización sobre PostgreSQL (usable con pool o tx).
// Payload se guarda como JSONB.
type SyncQueueRepo struct {
	q Querier
}

// NewSyncQueueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSyncQueueRepository(q Querier) *SyncQueueRepo {
	return &SyncQueueRepo{q: q}
}

const syncQueueColumns = `id, user_id, action, payload, status, retry_count, error_message, synced_at, created_at, updated_at`

// Create persiste una entrada de la cola.
func (r *SyncQueueRepo) Create(entry *entity.SyncQueueEntry) error {
	query := `
		INSERT INTO sync_queue (` + syncQueueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.UserID, entry.Action, []byte(entry.Payload), entry.Status,
		entry.RetryCount, nullIfEmpty(entry.ErrorMessage), entry.SyncedAt,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sync queue entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *SyncQueueRepo) GetByID(id string) (*entity.SyncQueueEntry, error) {
	query := `SELECT ` + syncQueueColumns + ` FROM sync_queue WHERE id = $1`
	return scanSyncEntry(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza estado, reintentos y marcas de una entrada.
func (r *SyncQueueRepo) Update(entry *entity.SyncQueueEntry) error {
	query := `
		UPDATE sync_queue
		SET status = $1, retry_count = $2, error_message = $3, synced_at = $4, updated_at = $5
		WHERE id = $6`
	tag, err := r.q.Exec(context.Background(), query,
		entry.Status, entry.RetryCount, nullIfEmpty(entry.ErrorMessage),
		entry.SyncedAt, entry.UpdatedAt, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update sync queue entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStatus entradas con un estado, más antiguas primero.
func (r *SyncQueueRepo) ListByStatus(status string) ([]*entity.SyncQueueEntry, error) {
	query := `SELECT ` + syncQueueColumns + ` FROM sync_queue WHERE status = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, status)
	if err != nil {
		return nil, fmt.Errorf("list sync queue: %w", err)
	}
	defer rows.Close()

	var list []*entity.SyncQueueEntry
	for rows.Next() {
		e, err := scanSyncEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanSyncEntry(row pgx.Row) (*entity.SyncQueueEntry, error) {
	var e entity.SyncQueueEntry
	var payload []byte
	var errMsg *string
	err := row.Scan(&e.ID, &e.UserID, &e.Action, &payload, &e.Status,
		&e.RetryCount, &errMsg, &e.SyncedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sync queue entry: %w", err)
	}
	e.Payload = payload
	if errMsg != nil {
		e.ErrorMessage = *errMsg
	}
	return &e, nil
}
