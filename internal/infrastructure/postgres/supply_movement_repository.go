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

var _ repository.SupplyMovementRepository = (*SupplyMovementRepo)(nil)

// SupplyMovementRepo libro de insumos sobre PostgreSQL (usable con pool o tx).
type SupplyMovementRepo struct {
	q Querier
}

// NewSupplyMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyMovementRepository(q Querier) *SupplyMovementRepo {
	return &SupplyMovementRepo{q: q}
}

const supplyMovementColumns = `id, seq, supply_id, type, quantity, balance_after, reference_kind, reference_id, created_by, created_at`

// Create persiste el movimiento y captura el seq asignado por la base.
func (r *SupplyMovementRepo) Create(movement *entity.SupplyMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO supply_movements (id, supply_id, type, quantity, balance_after, reference_kind, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.SupplyID, movement.Type, movement.Quantity,
		movement.BalanceAfter, nullIfEmpty(movement.ReferenceKind),
		nullIfEmpty(movement.ReferenceID), movement.CreatedBy, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("create supply movement: %w", err)
	}
	return nil
}

// LastBySupply devuelve el último movimiento en orden de libro, o nil.
func (r *SupplyMovementRepo) LastBySupply(supplyID string) (*entity.SupplyMovement, error) {
	query := `
		SELECT ` + supplyMovementColumns + `
		FROM supply_movements WHERE supply_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT 1`
	return scanSupplyMovement(r.q.QueryRow(context.Background(), query, supplyID))
}

// ListBySupply lista movimientos de un insumo, más recientes primero.
func (r *SupplyMovementRepo) ListBySupply(supplyID string, from, to *time.Time, limit, offset int) ([]*entity.SupplyMovement, error) {
	query := `
		SELECT ` + supplyMovementColumns + `
		FROM supply_movements WHERE supply_id = $1`
	args := []any{supplyID}
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
		return nil, fmt.Errorf("list by supply: %w", err)
	}
	defer rows.Close()

	var list []*entity.SupplyMovement
	for rows.Next() {
		m, err := scanSupplyMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanSupplyMovement(row pgx.Row) (*entity.SupplyMovement, error) {
	var m entity.SupplyMovement
	var refKind, refID *string
	err := row.Scan(&m.ID, &m.Seq, &m.SupplyID, &m.Type, &m.Quantity,
		&m.BalanceAfter, &refKind, &refID, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan supply movement: %w", err)
	}
	if refKind != nil {
		m.ReferenceKind = *refKind
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	return &m, nil
}
