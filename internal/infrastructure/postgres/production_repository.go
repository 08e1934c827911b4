package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo registros de producción sobre PostgreSQL (usable con pool o tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, product_id, quantity, machine_on_at, machine_off_at, notes, created_by, created_at`

// Create persiste una corrida de producción.
func (r *ProductionRepo) Create(record *entity.ProductionRecord) error {
	query := `
		INSERT INTO production_records (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.Quantity, record.MachineOnAt,
		record.MachineOffAt, nullIfEmpty(record.Notes), record.CreatedBy, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production record: %w", err)
	}
	return nil
}

// GetByID obtiene una corrida por ID.
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records WHERE id = $1`
	return scanProduction(r.q.QueryRow(context.Background(), query, id))
}

// ListBetween corridas con machine_on_at dentro de [from, to), más recientes primero.
func (r *ProductionRepo) ListBetween(from, to time.Time) ([]*entity.ProductionRecord, error) {
	query := `
		SELECT ` + productionColumns + `
		FROM production_records
		WHERE machine_on_at >= $1 AND machine_on_at < $2
		ORDER BY machine_on_at DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list production records: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionRecord
	for rows.Next() {
		rec, err := scanProduction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanProduction(row pgx.Row) (*entity.ProductionRecord, error) {
	var rec entity.ProductionRecord
	var notes *string
	err := row.Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &rec.MachineOnAt,
		&rec.MachineOffAt, &notes, &rec.CreatedBy, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan production record: %w", err)
	}
	if notes != nil {
		rec.Notes = *notes
	}
	return &rec, nil
}
