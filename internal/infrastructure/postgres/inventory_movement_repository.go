package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo libro de productos terminados sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only; seq es un bigserial que da
// orden total de inserción dentro del mismo instante.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, seq, product_id, type, quantity, balance_after, reference_kind, reference_id, created_by, created_at`

// Create persiste el movimiento y captura el seq asignado por la base.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity, balance_after, reference_kind, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	refKind := nullIfEmpty(movement.ReferenceKind)
	refID := nullIfEmpty(movement.ReferenceID)
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.BalanceAfter, refKind, refID, movement.CreatedBy, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// LastByProduct devuelve el último movimiento en orden de libro, o nil.
func (r *InventoryMovementRepo) LastByProduct(productID string) (*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var refKind, refID *string
	err := row.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Type, &m.Quantity,
		&m.BalanceAfter, &refKind, &refID, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if refKind != nil {
		m.ReferenceKind = *refKind
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	return &m, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
