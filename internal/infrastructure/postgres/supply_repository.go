package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, sku, name, unit, linked_product_id, deduct_per_sale, kit_component, min_stock, is_active, created_at, updated_at`

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	err := row.Scan(&s.ID, &s.SKU, &s.Name, &s.Unit, &s.LinkedProductID, &s.DeductPerSale,
		&s.KitComponent, &s.MinStock, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan supply: %w", err)
	}
	return &s, nil
}

// GetByID obtiene un insumo por ID.
func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1`
	return scanSupply(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el insumo bloqueando su fila (SELECT FOR UPDATE).
func (r *SupplyRepo) GetForUpdate(id string) (*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1 FOR UPDATE`
	return scanSupply(r.q.QueryRow(context.Background(), query, id))
}

func (r *SupplyRepo) list(query string, args ...any) ([]*entity.Supply, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.SKU, &s.Name, &s.Unit, &s.LinkedProductID, &s.DeductPerSale,
			&s.KitComponent, &s.MinStock, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListActive lista los insumos activos ordenados por nombre.
func (r *SupplyRepo) ListActive() ([]*entity.Supply, error) {
	return r.list(`SELECT ` + supplyColumns + ` FROM supplies WHERE is_active = TRUE ORDER BY name`)
}

// ListByLinkedProduct insumos activos vinculados a un producto, por ID
// ascendente (orden fijo de bloqueo).
func (r *SupplyRepo) ListByLinkedProduct(productID string) ([]*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE linked_product_id = $1 AND is_active = TRUE ORDER BY id`
	return r.list(query, productID)
}

// ListKitComponents insumos activos del kit de unidad nueva, por ID ascendente.
func (r *SupplyRepo) ListKitComponents() ([]*entity.Supply, error) {
	return r.list(`SELECT ` + supplyColumns + ` FROM supplies WHERE kit_component = TRUE AND is_active = TRUE ORDER BY id`)
}
